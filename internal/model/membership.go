package model

import "time"

// 成员状态：REJECTED 不落库，拒绝即删除记录
const (
	MemberPending  = "PENDING"
	MemberApproved = "APPROVED"
)

const MemberRoleDefault = "MEMBER"

type CommunityMember struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	CommunityID  uint64    `gorm:"not null;index;uniqueIndex:uk_community_user" json:"community_id"`
	UserID       uint64    `gorm:"not null;index;uniqueIndex:uk_community_user" json:"user_id"`
	MemberStatus string    `gorm:"size:16;not null;default:'PENDING';index" json:"member_status"`
	Role         string    `gorm:"size:16;not null;default:'MEMBER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

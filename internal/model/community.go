package model

import "time"

type Community struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatorID   uint64 `gorm:"not null;index" json:"creator_id"`
	// 派生计数，真实来源分别是 community_members / community_page_links
	MemberCount int64     `gorm:"not null;default:0" json:"member_count"`
	PageCount   int64     `gorm:"not null;default:0" json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommunityAdmin 社区管理员集合，建社区时在同一事务写入创建者，保证非空
type CommunityAdmin struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"not null;index;uniqueIndex:uk_community_admin" json:"community_id"`
	AdminID     uint64    `gorm:"not null;index;uniqueIndex:uk_community_admin" json:"admin_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommunityAdmin) TableName() string { return "community_admins" }

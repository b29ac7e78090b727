package model

import "time"

const (
	RecipientUser  = "user"
	RecipientAdmin = "admin"
)

// 通知类型
const (
	NoticeMembershipRequested = "membership_requested"
	NoticeMembershipApproved  = "membership_approved"
	NoticeMembershipRemoved   = "membership_removed"
	NoticePageSubmitted       = "page_submitted"
	NoticePageApproved        = "page_approved"
	NoticePageRejected        = "page_rejected"
)

type Notification struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	RecipientID   uint64    `gorm:"not null;index:idx_recipient" json:"recipient_id"`
	RecipientKind string    `gorm:"size:8;not null;index:idx_recipient" json:"recipient_kind"`
	Kind          string    `gorm:"size:32;not null" json:"kind"`
	Payload       string    `gorm:"type:json;not null" json:"payload"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

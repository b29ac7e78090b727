package model

import "time"

// ModerationOutbox 审核事件监控表
type ModerationOutbox struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	EventType   string    `gorm:"size:32;not null" json:"event_type"`
	CommunityID uint64    `gorm:"not null;index" json:"community_id"`
	ActorID     uint64    `gorm:"not null" json:"actor_id"`
	SubjectID   uint64    `gorm:"not null" json:"subject_id"`
	Payload     string    `gorm:"type:json;not null" json:"payload"`
	Status      int8      `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'" json:"status"`
	Retry       int       `gorm:"not null;default:0" json:"retry"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ModerationOutbox) TableName() string { return "moderation_outbox" }

package model

import "time"

type PageLike struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:uk_user_page" json:"user_id"`
	PageID    uint64    `gorm:"not null;index;uniqueIndex:uk_user_page" json:"page_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PageLike) TableName() string { return "page_likes" }

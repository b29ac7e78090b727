package model

import "time"

const (
	CommentVisible = 0
	CommentDeleted = 1
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PageID    uint64    `gorm:"not null;index" json:"page_id"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Status    int8      `gorm:"not null;default:0" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

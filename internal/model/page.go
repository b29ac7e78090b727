package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 页面状态，link 上的 page_status 是权威值，Page.page_status 只是镜像
const (
	PagePending  = "PENDING"
	PageApproved = "APPROVED"
	PageRejected = "REJECTED"
)

// StringList 以 JSON 数组落库的标签集合
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported string list source %T", src)
	}
	return json.Unmarshal(data, (*[]string)(s))
}

type Page struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	AuthorID   uint64     `gorm:"not null;index" json:"author_id"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Content    string     `gorm:"type:text" json:"content"`
	Tags       StringList `gorm:"type:json" json:"tags"`
	PageStatus string     `gorm:"size:16;not null;default:'PENDING'" json:"page_status"`
	// 审核留痕：最后一次审批/驳回该页面的管理员
	ReviewedBy *uint64   `gorm:"index" json:"reviewed_by,omitempty"`
	LikeCount  int64     `gorm:"not null;default:0" json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommunityPageLink 页面在某个社区内的审核状态
type CommunityPageLink struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"not null;index;uniqueIndex:uk_community_page" json:"community_id"`
	PageID      uint64    `gorm:"not null;index;uniqueIndex:uk_community_page" json:"page_id"`
	PageStatus  string    `gorm:"size:16;not null;default:'PENDING';index" json:"page_status"`
	ApprovedBy  *uint64   `json:"approved_by,omitempty"`
	RejectedBy  *uint64   `json:"rejected_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CommunityPageLink) TableName() string { return "community_page_links" }

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	AdminRoleAdmin      = "ADMIN"
	AdminRoleSuperAdmin = "SUPER_ADMIN"
)

// PermissionList 以 JSON 数组落库的权限集合
type PermissionList []string

func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PermissionList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("unsupported permission list source %T", src)
	}
	return json.Unmarshal(data, (*[]string)(p))
}

func (p PermissionList) Contains(perm string) bool {
	for _, v := range p {
		if v == perm {
			return true
		}
	}
	return false
}

// Admin 与 User 是两套独立的身份空间
type Admin struct {
	ID          uint64         `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Email       string         `gorm:"size:64;not null" json:"email"`
	Role        string         `gorm:"size:16;not null;default:'ADMIN'" json:"role"`
	Permissions PermissionList `gorm:"type:json" json:"permissions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (a *Admin) IsSuperAdmin() bool {
	return a.Role == AdminRoleSuperAdmin
}

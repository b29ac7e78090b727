package model

import "time"

// 用户角色（投资社区的三类身份 + 平台运营）
const (
	RoleEntrepreneur = "ENTREPRENEUR"
	RoleInvestor     = "INVESTOR"
	RoleMentor       = "MENTOR"
	RoleAdmin        = "ADMIN"
)

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     string    `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Role      string    `gorm:"size:16;not null;default:'ENTREPRENEUR'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidUserRole(role string) bool {
	switch role {
	case RoleEntrepreneur, RoleInvestor, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"-"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Role        Role      `gorm:"size:16;default:'user';not null" json:"role"`
	Bio         string    `gorm:"type:text" json:"bio"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	IsSuperuser bool      `gorm:"default:false;not null" json:"-"`
	IsActive    *bool     `gorm:"default:true" json:"-"` // nil is treated as active
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// BeforeCreate hook to set UUID and default role before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// CanAuthenticate reports whether the account may obtain or use a token.
func (user *User) CanAuthenticate() bool {
	return user.IsActive == nil || *user.IsActive
}

func (User) TableName() string {
	return "users"
}

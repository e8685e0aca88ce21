package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Username  string         `json:"username" gorm:"size:200;uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"size:200;not null"`
	Role      UserRole       `json:"role" gorm:"size:20;default:'member'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null;default:'Customer'"` // Customer, Admin
	Email        string    `json:"email" gorm:"size:100"`
	Phone        string    `json:"phone" gorm:"size:15"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRole string

const (
	RoleCustomer UserRole = "Customer"
	RoleAdmin    UserRole = "Admin"
)

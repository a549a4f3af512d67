package model

import (
	"time"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// SubscriptionTier 订阅档位，决定高级功能的访问范围
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
	TierPro     SubscriptionTier = "pro"
)

// swagger:model User
type User struct {
	UUIDBase
	Email            string           `gorm:"size:100;unique;not null" json:"email"`
	Username         string           `gorm:"size:50;unique;not null" json:"username"`
	Password         string           `gorm:"size:100;not null" json:"-"`
	FullName         string           `gorm:"size:100" json:"fullName"`
	Role             UserRole         `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`
	SubscriptionTier SubscriptionTier `gorm:"type:enum('free','premium','pro');default:'free'" json:"subscriptionTier"`
	IsActive         bool             `gorm:"default:true" json:"isActive"`
	Language         string           `gorm:"size:10;default:'en'" json:"language"`
	LastLogin        time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

package model

import "time"

// swagger:model Subscription
type Subscription struct {
	UUIDBase
	UserID    string           `gorm:"index;type:varchar(36)" json:"userId"`
	Tier      SubscriptionTier `gorm:"type:enum('free','premium','pro');default:'free'" json:"tier"`
	StartedAt time.Time        `json:"startedAt"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"` // nil 表示不过期
	IsActive  bool             `gorm:"default:true" json:"isActive"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// UsageRecord 高级功能的调用流水，按天限额统计
type UsageRecord struct {
	UUIDBase
	UserID  string    `gorm:"index:idx_usage_user_feature;type:varchar(36)" json:"userId"`
	Feature string    `gorm:"index:idx_usage_user_feature;size:50;not null" json:"feature"`
	UsedAt  time.Time `gorm:"index" json:"usedAt"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}

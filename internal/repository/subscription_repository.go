package repository

import (
	"course_companion_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.DB.Create(sub).Error
}

// FindActiveByUser 用户当前生效的订阅；不存在视为 free 档
func (r *SubscriptionRepository) FindActiveByUser(userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("started_at desc").
		First(&sub).Error
	return &sub, err
}

// DeactivateByUser 升降档前先停用旧订阅
func (r *SubscriptionRepository) DeactivateByUser(userID string) error {
	return r.DB.Model(&model.Subscription{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).
		Error
}

type UsageRepository struct {
	DB *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{DB: db}
}

func (r *UsageRepository) Create(record *model.UsageRecord) error {
	return r.DB.Create(record).Error
}

// CountToday 统计用户某功能当日（UTC）的调用次数
func (r *UsageRepository) CountToday(userID, feature string) (int64, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)

	var count int64
	err := r.DB.Model(&model.UsageRecord{}).
		Where("user_id = ? AND feature = ? AND used_at >= ?", userID, feature, dayStart).
		Count(&count).Error
	return count, err
}

package repository

import (
	"course_companion_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndContent(userID, contentID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) ListByUser(userID string) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Order("last_accessed_at desc").Find(&progress).Error
	return progress, err
}

// RecordQuizResult 测验提交后更新进度，不存在则创建
func (r *ProgressRepository) RecordQuizResult(userID, contentID string, percentage float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.UserProgress
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = model.UserProgress{
				UserID:         userID,
				ContentID:      contentID,
				BestQuizScore:  percentage,
				QuizAttempts:   1,
				LastAccessedAt: time.Now(),
			}
			return tx.Create(&progress).Error
		}
		if err != nil {
			return err
		}

		progress.QuizAttempts++
		progress.LastAccessedAt = time.Now()
		if percentage > progress.BestQuizScore {
			progress.BestQuizScore = percentage
		}
		return tx.Save(&progress).Error
	})
}

func (r *ProgressRepository) UpdateCompletion(userID, contentID string, percent float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.UserProgress
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = model.UserProgress{
				UserID:            userID,
				ContentID:         contentID,
				CompletionPercent: percent,
				LastAccessedAt:    time.Now(),
			}
			return tx.Create(&progress).Error
		}
		if err != nil {
			return err
		}

		progress.CompletionPercent = percent
		progress.LastAccessedAt = time.Now()
		if percent >= 100 && progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
		return tx.Save(&progress).Error
	})
}

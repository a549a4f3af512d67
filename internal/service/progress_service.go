package service

import (
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/repository"
	"errors"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo}
}

// ProgressSummary 用户的整体学习概览
type ProgressSummary struct {
	ContentProgress []model.UserProgress `json:"contentProgress"`
	TotalContents   int                  `json:"totalContents"`
	CompletedCount  int                  `json:"completedCount"`
	AverageScore    float64              `json:"averageScore"`
}

func (s *ProgressService) GetSummary(userID string) (*ProgressSummary, error) {
	progress, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		ContentProgress: progress,
		TotalContents:   len(progress),
	}

	var scoreSum float64
	var scored int
	for _, p := range progress {
		if p.CompletedAt != nil {
			summary.CompletedCount++
		}
		if p.QuizAttempts > 0 {
			scoreSum += p.BestQuizScore
			scored++
		}
	}
	if scored > 0 {
		summary.AverageScore = scoreSum / float64(scored)
	}

	return summary, nil
}

func (s *ProgressService) GetContentProgress(userID, contentID string) (*model.UserProgress, error) {
	progress, err := s.ProgressRepo.FindByUserAndContent(userID, contentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 未开始的内容返回零值进度而不是 404
		return &model.UserProgress{UserID: userID, ContentID: contentID}, nil
	}
	return progress, err
}

func (s *ProgressService) UpdateCompletion(userID, contentID string, percent float64) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return s.ProgressRepo.UpdateCompletion(userID, contentID, percent)
}

package repository

import (
	"course_companion_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// CreateWithAnswers 提交与逐题结果在同一事务内落库
func (r *SubmissionRepository) CreateWithAnswers(submission *model.QuizSubmission, answers []model.QuizSubmissionAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SubmissionID = submission.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SubmissionRepository) FindByID(id string) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.DB.Preload("Answers").First(&submission, "id = ?", id).Error
	return &submission, err
}

func (r *SubmissionRepository) CountByUserAndQuiz(userID, quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizSubmission{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) ListByUser(userID string, page, limit int) ([]model.QuizSubmission, int64, error) {
	var total int64
	query := r.DB.Model(&model.QuizSubmission{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.QuizSubmission
	offset := (page - 1) * limit
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at desc").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *SubmissionRepository) ListByQuiz(quizID string, page, limit int) ([]model.QuizSubmission, int64, error) {
	var total int64
	query := r.DB.Model(&model.QuizSubmission{}).Where("quiz_id = ?", quizID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.QuizSubmission
	offset := (page - 1) * limit
	err := r.DB.Where("quiz_id = ?", quizID).
		Order("submitted_at desc").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

// LatestByUserAndQuiz 用户在某测验上的最近一次提交
func (r *SubmissionRepository) LatestByUserAndQuiz(userID, quizID string) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.DB.Preload("Answers").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("submitted_at desc").
		First(&submission).Error
	return &submission, err
}

// SubmissionStats 用户全部提交的汇总统计
type SubmissionStats struct {
	Total        int64   `json:"total"`
	AverageScore float64 `json:"averageScore"`
	BestScore    float64 `json:"bestScore"`
}

func (r *SubmissionRepository) StatsByUser(userID string) (*SubmissionStats, error) {
	var stats SubmissionStats
	err := r.DB.Model(&model.QuizSubmission{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) as total, COALESCE(AVG(percentage), 0) as average_score, COALESCE(MAX(percentage), 0) as best_score").
		Scan(&stats).Error
	return &stats, err
}

func (r *SubmissionRepository) BestScoreByUserAndQuiz(userID, quizID string) (float64, error) {
	var best float64
	err := r.DB.Model(&model.QuizSubmission{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Select("COALESCE(MAX(percentage), 0)").
		Scan(&best).Error
	return best, err
}

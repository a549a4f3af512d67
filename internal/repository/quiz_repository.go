package repository

import (
	"course_companion_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "id = ?", id).Error
	return &quiz, err
}

// FindByIDWithQuestions 加载试卷及其题目和答案条目，题目按序号排列
func (r *QuizRepository) FindByIDWithQuestions(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_index asc")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_answers.order_index asc")
		}).
		First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err == nil && len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

func (r *QuizRepository) ListByContent(contentID string, activeOnly bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Where("content_id = ?", contentID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) List(page, limit int) ([]model.Quiz, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Quiz{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []model.Quiz
	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionByID(id string) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.Preload("Answers").First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuizRepository) UpdateQuestion(question *model.QuizQuestion) error {
	return r.DB.Save(question).Error
}

func (r *QuizRepository) DeleteQuestion(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuizQuestion{}, "id = ?", id).Error
	})
}

func (r *QuizRepository) CreateAnswer(answer *model.QuizAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *QuizRepository) FindAnswerByID(id string) (*model.QuizAnswer, error) {
	var a model.QuizAnswer
	err := r.DB.First(&a, "id = ?", id).Error
	return &a, err
}

func (r *QuizRepository) DeleteAnswer(id string) error {
	return r.DB.Delete(&model.QuizAnswer{}, "id = ?", id).Error
}

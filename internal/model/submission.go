package model

import (
	"encoding/json"
	"time"
)

// swagger:model QuizSubmission
type QuizSubmission struct {
	UUIDBase
	QuizID           string          `gorm:"index;type:varchar(36)" json:"quizId"`
	UserID           string          `gorm:"index;type:varchar(36)" json:"userId"`
	Score            int             `gorm:"default:0" json:"score"`
	MaxScore         int             `gorm:"default:0" json:"maxScore"`
	Percentage       float64         `gorm:"default:0" json:"percentage"`
	AttemptNumber    int             `gorm:"default:1" json:"attemptNumber"`
	TimeTakenMinutes int             `gorm:"default:0" json:"timeTakenMinutes"`
	IsCompleted      bool            `gorm:"default:false" json:"isCompleted"`
	GradingMethod    string          `gorm:"size:20;default:'rule_based'" json:"gradingMethod"`
	FeedbackData     json.RawMessage `gorm:"type:json" json:"feedbackData,omitempty"` // 综合反馈快照
	SubmittedAt      time.Time       `json:"submittedAt"`

	Answers []QuizSubmissionAnswer `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

type QuizSubmissionAnswer struct {
	UUIDBase
	SubmissionID  string `gorm:"index;type:varchar(36)" json:"submissionId"`
	QuestionID    string `gorm:"index;type:varchar(36)" json:"questionId"`
	AnswerText    string `gorm:"type:text" json:"answerText"`
	IsCorrect     bool   `gorm:"default:false" json:"isCorrect"`
	PointsEarned  int    `gorm:"default:0" json:"pointsEarned"`
	Feedback      string `gorm:"type:text" json:"feedback"`
}

func (QuizSubmissionAnswer) TableName() string {
	return "quiz_submission_answers"
}

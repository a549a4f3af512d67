package model

// QuizType 测验形式
type QuizType string

const (
	QuizTypePractice   QuizType = "practice"
	QuizTypeAssessment QuizType = "assessment"
	QuizTypeReview     QuizType = "review"
)

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	ContentID        string   `gorm:"index;type:varchar(36)" json:"contentId"`
	CreatorID        string   `gorm:"index;type:varchar(36)" json:"creatorId"`
	Title            string   `gorm:"size:255;not null" json:"title"`
	Description      string   `gorm:"type:text" json:"description"`
	QuizType         QuizType `gorm:"size:20;default:'practice'" json:"quizType"`
	DifficultyLevel  string   `gorm:"size:20;default:'medium'" json:"difficultyLevel"`
	TimeLimitMinutes int      `gorm:"default:0" json:"timeLimitMinutes"` // 0 表示不限时
	PassingScore     float64  `gorm:"default:60" json:"passingScore"`    // 百分制及格线
	MaxAttempts      int      `gorm:"default:3" json:"maxAttempts"`      // 0 表示不限次数
	IsActive         bool     `gorm:"default:true" json:"isActive"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID       string `gorm:"index;type:varchar(36)" json:"quizId"`
	QuestionText string `gorm:"type:text;not null" json:"questionText"`
	QuestionType string `gorm:"size:50;not null" json:"questionType"` // mcq / tf / fill_blank / essay
	OrderIndex   int    `gorm:"default:0" json:"orderIndex"`
	Points       int    `gorm:"default:1" json:"points"`
	Explanation  string `gorm:"type:text" json:"explanation"`

	Answers []QuizAnswer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAnswer 题目的候选答案条目；选择题的干扰项 IsCorrect 为 false
type QuizAnswer struct {
	UUIDBase
	QuestionID    string `gorm:"index;type:varchar(36)" json:"questionId"`
	AnswerText    string `gorm:"type:text;not null" json:"answerText"`
	IsCorrect     bool   `gorm:"default:false" json:"isCorrect"`
	OrderIndex    int    `gorm:"default:0" json:"orderIndex"`
	PointsAwarded int    `gorm:"default:0" json:"pointsAwarded"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

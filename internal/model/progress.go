package model

import "time"

// UserProgress 用户在某内容上的学习进度，测验提交后同步更新
type UserProgress struct {
	UUIDBase
	UserID             string     `gorm:"uniqueIndex:idx_progress_user_content;type:varchar(36)" json:"userId"`
	ContentID          string     `gorm:"uniqueIndex:idx_progress_user_content;type:varchar(36)" json:"contentId"`
	CompletionPercent  float64    `gorm:"default:0" json:"completionPercent"`
	BestQuizScore      float64    `gorm:"default:0" json:"bestQuizScore"`
	QuizAttempts       int        `gorm:"default:0" json:"quizAttempts"`
	TimeSpentMinutes   int        `gorm:"default:0" json:"timeSpentMinutes"`
	LastAccessedAt     time.Time  `json:"lastAccessedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

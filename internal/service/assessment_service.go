package service

import (
	"course_companion_backend/internal/grading"
	"strings"

	"go.uber.org/zap"
)

// AssessmentService 对不落库的自由作答即席评分，
// 复用测验评分引擎（单题试卷）。
type AssessmentService struct {
	Engine *grading.Engine
	Log    *zap.Logger
}

func NewAssessmentService(engine *grading.Engine, log *zap.Logger) *AssessmentService {
	return &AssessmentService{Engine: engine, Log: log}
}

type FreeformGradeReq struct {
	Prompt       string   `json:"prompt" binding:"required"`
	ResponseText string   `json:"responseText" binding:"required"`
	KeyConcepts  []string `json:"keyConcepts" binding:"required,min=1"`
	MaxPoints    int      `json:"maxPoints"`
}

type FreeformGradeResp struct {
	IsCorrect      bool    `json:"isCorrect"`
	PointsAwarded  int     `json:"pointsAwarded"`
	PointsPossible int     `json:"pointsPossible"`
	Score          float64 `json:"score"`
	Feedback       string  `json:"feedback"`
}

// GradeFreeform 把自由作答包装成单题论述卷走规则评分
func (s *AssessmentService) GradeFreeform(req *FreeformGradeReq) (*FreeformGradeResp, error) {
	maxPoints := req.MaxPoints
	if maxPoints <= 0 {
		maxPoints = 10
	}

	quiz := grading.Quiz{
		ID:    "adhoc",
		Title: "Freeform assessment",
		Questions: []grading.Question{
			{
				ID:     "q1",
				Text:   req.Prompt,
				Type:   grading.TypeEssay,
				Points: maxPoints,
				AnswerKey: []grading.AnswerKeyEntry{
					{
						Text:          strings.Join(req.KeyConcepts, " "),
						IsCorrect:     true,
						PointsAwarded: maxPoints,
					},
				},
			},
		},
	}

	result, err := s.Engine.Grade(quiz, []grading.SubmittedAnswer{
		{QuestionID: "q1", AnswerText: req.ResponseText},
	})
	if err != nil {
		return nil, err
	}

	graded := result.GradedAnswers[0]
	return &FreeformGradeResp{
		IsCorrect:      graded.IsCorrect,
		PointsAwarded:  graded.PointsAwarded,
		PointsPossible: graded.PointsPossible,
		Score:          result.OverallScore,
		Feedback:       graded.Feedback,
	}, nil
}

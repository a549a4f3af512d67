package grading

// QuestionType 题目类型，与数据库 quiz_questions.question_type 枚举一致
type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeTrueFalse QuestionType = "tf"
	TypeFillBlank QuestionType = "fill_blank"
	TypeEssay     QuestionType = "essay"
)

// 置信度等级，由总分推导
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// GradingMethodRuleBased 标识评分结果由规则引擎产生（非模型评分）
const GradingMethodRuleBased = "rule_based"

// AnswerKeyEntry 标准答案条目。一道题可以有多个可接受的表述，
// PointsAwarded 为命中该条目时可得的分值（不超过题目分值）。
type AnswerKeyEntry struct {
	Text          string `json:"text"`
	IsCorrect     bool   `json:"isCorrect"`
	PointsAwarded int    `json:"pointsAwarded"`
}

// Question 待评分的题目及其答案键，发布后视为只读
type Question struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Type      QuestionType     `json:"type"`
	Order     int              `json:"order"`
	Points    int              `json:"points"`
	AnswerKey []AnswerKeyEntry `json:"answerKey"`
}

// Quiz 评分引擎的输入试卷
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// SubmittedAnswer 用户提交的单题作答
type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

// QuestionResult 单题评分结果
type QuestionResult struct {
	QuestionID     string       `json:"question_id"`
	QuestionText   string       `json:"question_text"`
	UserAnswer     string       `json:"user_answer"`
	IsCorrect      bool         `json:"is_correct"`
	PointsAwarded  int          `json:"points_awarded"`
	PointsPossible int          `json:"points_possible"`
	Feedback       string       `json:"feedback"`
	QuestionType   QuestionType `json:"question_type"`
}

// TypeBreakdown 按题型聚合的得分
type TypeBreakdown struct {
	QuestionType   QuestionType `json:"question_type"`
	PossiblePoints int          `json:"possible_points"`
	EarnedPoints   int          `json:"earned_points"`
	Count          int          `json:"count"`
	Percentage     float64      `json:"percentage"`
}

// GradingResult 提交级评分结果
type GradingResult struct {
	OverallScore                float64          `json:"overall_score"`
	MaxScore                    int              `json:"max_score"`
	EarnedPoints                int              `json:"earned_points"`
	GradedAnswers               []QuestionResult `json:"graded_answers"`
	Breakdown                   []TypeBreakdown  `json:"breakdown"`
	DetailedFeedback            string           `json:"detailed_feedback"`
	SuggestedImprovements       []string         `json:"suggested_improvements"`
	MisconceptionsIdentified    []string         `json:"misconceptions_identified"`
	NextLearningRecommendations []string         `json:"next_learning_recommendations"`
	ConfidenceLevel             string           `json:"confidence_level"`
	GradingMethod               string           `json:"grading_method"`
}

// ValidationError 前置条件不满足（试卷缺失/无题目），评分中止
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

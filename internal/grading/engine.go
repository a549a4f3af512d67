package grading

import (
	"strings"

	"go.uber.org/zap"
)

// Engine 规则评分引擎。纯内存计算，无 I/O、无共享可变状态，
// 可被任意多个请求并发调用。
type Engine struct {
	registry *Registry
	log      *zap.Logger
}

// NewEngine 创建评分引擎。registry 为 nil 时使用内置评分器，
// log 为 nil 时不输出审计日志。
func NewEngine(registry *Registry, log *zap.Logger) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{registry: registry, log: log}
}

// Grade 对一次提交评分。
// 前置条件：试卷至少包含一道题，否则返回 ValidationError。
// 指向不存在题目的作答被静默跳过；同一题目的重复作答只取首次。
// 相同输入恒产生相同输出。
func (e *Engine) Grade(quiz Quiz, answers []SubmittedAnswer) (*GradingResult, error) {
	if len(quiz.Questions) == 0 {
		return nil, &ValidationError{Reason: "quiz has no questions"}
	}

	questionMap := make(map[string]Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questionMap[q.ID] = q
	}

	results := make([]QuestionResult, 0, len(answers))
	graded := make(map[string]bool, len(answers))

	for _, ans := range answers {
		q, ok := questionMap[ans.QuestionID]
		if !ok {
			// 容忍过期/多余的提交条目，不让整批评分失败
			e.log.Debug("skipping answer to unknown question",
				zap.String("quizId", quiz.ID),
				zap.String("questionId", ans.QuestionID))
			continue
		}
		if graded[ans.QuestionID] {
			continue
		}
		graded[ans.QuestionID] = true

		results = append(results, e.gradeOne(q, ans))
	}

	earned, possible := sumPoints(results)
	score := overallScore(earned, possible)

	return &GradingResult{
		OverallScore:                score,
		MaxScore:                    possible,
		EarnedPoints:                earned,
		GradedAnswers:               results,
		Breakdown:                   buildBreakdown(results),
		DetailedFeedback:            narrativeFeedback(score),
		SuggestedImprovements:       buildSuggestions(results),
		MisconceptionsIdentified:    identifyMisconceptions(results),
		NextLearningRecommendations: buildRecommendations(results),
		ConfidenceLevel:             confidenceLevel(score),
		GradingMethod:               GradingMethodRuleBased,
	}, nil
}

func (e *Engine) gradeOne(q Question, ans SubmittedAnswer) QuestionResult {
	var (
		isCorrect bool
		points    int
		feedback  string
	)

	if strings.TrimSpace(ans.AnswerText) == "" {
		// 空白作答对所有题型统一处理：0 分，不算错误
		isCorrect, points, feedback = false, 0, feedbackNoAnswer
	} else {
		grader := e.registry.Lookup(q.Type)
		isCorrect, points, feedback = grader(q, ans.AnswerText, correctEntries(q.AnswerKey))
	}

	// 结果分值钳制在 [0, 题目分值] 内
	if points < 0 {
		points = 0
	}
	if points > q.Points {
		points = q.Points
	}

	return QuestionResult{
		QuestionID:     q.ID,
		QuestionText:   q.Text,
		UserAnswer:     ans.AnswerText,
		IsCorrect:      isCorrect,
		PointsAwarded:  points,
		PointsPossible: q.Points,
		Feedback:       feedback,
		QuestionType:   q.Type,
	}
}

// correctEntries 只有标记为正确的答案条目参与匹配
func correctEntries(keys []AnswerKeyEntry) []AnswerKeyEntry {
	out := make([]AnswerKeyEntry, 0, len(keys))
	for _, k := range keys {
		if k.IsCorrect {
			out = append(out, k)
		}
	}
	return out
}

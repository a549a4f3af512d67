package grading

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geographyQuiz() Quiz {
	return Quiz{
		ID:    "quiz-1",
		Title: "Geography Basics",
		Questions: []Question{
			{
				ID: "q1", Text: "What is the capital of France?", Type: TypeMCQ, Order: 1, Points: 10,
				AnswerKey: []AnswerKeyEntry{
					{Text: "Paris", IsCorrect: true, PointsAwarded: 10},
					{Text: "London", IsCorrect: false, PointsAwarded: 0},
				},
			},
			{
				ID: "q2", Text: "The Seine flows through Paris.", Type: TypeTrueFalse, Order: 2, Points: 5,
				AnswerKey: []AnswerKeyEntry{{Text: "true", IsCorrect: true, PointsAwarded: 5}},
			},
			{
				ID: "q3", Text: "The process plants use to make food is called ____.", Type: TypeFillBlank, Order: 3, Points: 5,
				AnswerKey: []AnswerKeyEntry{{Text: "photosynthesis", IsCorrect: true, PointsAwarded: 5}},
			},
		},
	}
}

func TestEngineGradeAllCorrect(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.Grade(geographyQuiz(), []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: "paris "},
		{QuestionID: "q2", AnswerText: "yes"},
		{QuestionID: "q3", AnswerText: "Photosynthesis"},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.OverallScore)
	assert.Equal(t, 20, result.MaxScore)
	assert.Equal(t, 20, result.EarnedPoints)
	assert.Len(t, result.GradedAnswers, 3)
	assert.Equal(t, GradingMethodRuleBased, result.GradingMethod)
	assert.Equal(t, ConfidenceHigh, result.ConfidenceLevel)
	assert.Empty(t, result.SuggestedImprovements)
	assert.Empty(t, result.MisconceptionsIdentified)
	assert.Empty(t, result.NextLearningRecommendations)

	for _, r := range result.GradedAnswers {
		assert.True(t, r.IsCorrect, "question %s", r.QuestionID)
		assert.Equal(t, r.PointsPossible, r.PointsAwarded, "question %s", r.QuestionID)
	}
}

func TestEngineGradePartialCredit(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.Grade(geographyQuiz(), []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: "Paris"},
		{QuestionID: "q2", AnswerText: "false"},
		{QuestionID: "q3", AnswerText: "photosynthesis process"},
	})
	require.NoError(t, err)

	// 10 + 0 + floor(5*0.8)=4 → 14/20 = 70.0
	assert.Equal(t, 14, result.EarnedPoints)
	assert.Equal(t, 20, result.MaxScore)
	assert.Equal(t, 70.0, result.OverallScore)
	assert.Equal(t, ConfidenceMedium, result.ConfidenceLevel)
	assert.Equal(t, "Good effort! You understand the main concepts but should review some areas.", result.DetailedFeedback)

	// 仅 q2 判错：一条建议、一条误解点、两条复习建议
	assert.Len(t, result.SuggestedImprovements, 1)
	assert.Contains(t, result.SuggestedImprovements[0], "The Seine flows through Paris.")
	assert.Len(t, result.MisconceptionsIdentified, 1)
	// 1/3 错题超过三成阈值，附加基础回顾建议
	assert.Equal(t, []string{
		"Review the material for incorrectly answered questions",
		"Practice similar questions to reinforce understanding",
		"Consider revisiting the foundational concepts before proceeding",
	}, result.NextLearningRecommendations)
}

func TestEngineGradeEmptyAnswers(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.Grade(geographyQuiz(), []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: ""},
		{QuestionID: "q2", AnswerText: "   "},
		{QuestionID: "q3", AnswerText: "\t\n"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.EarnedPoints)
	assert.Equal(t, 0.0, result.OverallScore)
	for _, r := range result.GradedAnswers {
		assert.False(t, r.IsCorrect, "question %s", r.QuestionID)
		assert.Equal(t, 0, r.PointsAwarded, "question %s", r.QuestionID)
		assert.Equal(t, "No answer provided.", r.Feedback, "question %s", r.QuestionID)
	}
}

func TestEngineGradeUnknownQuestionSkipped(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.Grade(geographyQuiz(), []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: "Paris"},
		{QuestionID: "deleted-question", AnswerText: "whatever"},
	})
	require.NoError(t, err)

	// 未知题目的作答被跳过，也不计入分母
	require.Len(t, result.GradedAnswers, 1)
	assert.Equal(t, "q1", result.GradedAnswers[0].QuestionID)
	assert.Equal(t, 10, result.MaxScore)
	assert.Equal(t, 100.0, result.OverallScore)
}

func TestEngineGradeDuplicateAnswersFirstWins(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.Grade(geographyQuiz(), []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: "Paris"},
		{QuestionID: "q1", AnswerText: "London"},
	})
	require.NoError(t, err)

	require.Len(t, result.GradedAnswers, 1)
	assert.Equal(t, "Paris", result.GradedAnswers[0].UserAnswer)
	assert.True(t, result.GradedAnswers[0].IsCorrect)
}

func TestEngineGradeNoQuestions(t *testing.T) {
	engine := NewEngine(nil, nil)

	_, err := engine.Grade(Quiz{ID: "empty"}, []SubmittedAnswer{{QuestionID: "q1", AnswerText: "x"}})
	require.Error(t, err)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestEngineGradeNoAnswers(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.Grade(geographyQuiz(), nil)
	require.NoError(t, err)

	assert.Empty(t, result.GradedAnswers)
	assert.Equal(t, 0, result.MaxScore)
	assert.Equal(t, 0.0, result.OverallScore)
	assert.Empty(t, result.Breakdown)
	assert.Equal(t, ConfidenceLow, result.ConfidenceLevel)
}

func TestEngineGradePointsClampedToQuestion(t *testing.T) {
	// 答案条目分值高于题目分值时，结果以题目分值封顶
	quiz := Quiz{
		ID: "quiz-clamp",
		Questions: []Question{
			{
				ID: "q1", Text: "Capital of France?", Type: TypeMCQ, Points: 5,
				AnswerKey: []AnswerKeyEntry{{Text: "Paris", IsCorrect: true, PointsAwarded: 100}},
			},
		},
	}

	engine := NewEngine(nil, nil)
	result, err := engine.Grade(quiz, []SubmittedAnswer{{QuestionID: "q1", AnswerText: "Paris"}})
	require.NoError(t, err)

	assert.Equal(t, 5, result.GradedAnswers[0].PointsAwarded)
	assert.Equal(t, 5, result.GradedAnswers[0].PointsPossible)
}

func TestEngineGradeIncorrectEntriesIgnored(t *testing.T) {
	engine := NewEngine(nil, nil)

	// "London" 是干扰项，即便精确命中也不得分
	result, err := engine.Grade(geographyQuiz(), []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: "London"},
	})
	require.NoError(t, err)

	assert.False(t, result.GradedAnswers[0].IsCorrect)
	assert.Equal(t, 0, result.GradedAnswers[0].PointsAwarded)
}

func TestEngineGradeDeterministic(t *testing.T) {
	engine := NewEngine(nil, nil)
	answers := []SubmittedAnswer{
		{QuestionID: "q1", AnswerText: "I believe it is Paris"},
		{QuestionID: "q2", AnswerText: "t"},
		{QuestionID: "q3", AnswerText: "photo synthesis"},
	}

	first, err := engine.Grade(geographyQuiz(), answers)
	require.NoError(t, err)
	second, err := engine.Grade(geographyQuiz(), answers)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("grading is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEngineGradeFallbackForUnknownType(t *testing.T) {
	quiz := Quiz{
		ID: "quiz-misc",
		Questions: []Question{
			{
				ID: "q1", Text: "Name the powerhouse of the cell.", Type: "short_answer", Points: 10,
				AnswerKey: []AnswerKeyEntry{{Text: "mitochondria", IsCorrect: true, PointsAwarded: 10}},
			},
		},
	}

	engine := NewEngine(nil, nil)
	result, err := engine.Grade(quiz, []SubmittedAnswer{{QuestionID: "q1", AnswerText: "the mitochondria"}})
	require.NoError(t, err)

	assert.True(t, result.GradedAnswers[0].IsCorrect)
	assert.Equal(t, 8, result.GradedAnswers[0].PointsAwarded)
	assert.Equal(t, "Partially correct.", result.GradedAnswers[0].Feedback)
}

func TestRegistryCustomGrader(t *testing.T) {
	registry := NewRegistry(gradeTextCompare)
	registry.Register("all_or_nothing", func(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string) {
		for _, k := range keys {
			if normalize(userAnswer) == normalize(k.Text) {
				return true, q.Points, "Exact."
			}
		}
		return false, 0, "Not exact."
	})

	quiz := Quiz{
		ID: "quiz-custom",
		Questions: []Question{
			{
				ID: "q1", Text: "Spell the term exactly.", Type: "all_or_nothing", Points: 3,
				AnswerKey: []AnswerKeyEntry{{Text: "Deoxyribonucleic acid", IsCorrect: true, PointsAwarded: 3}},
			},
		},
	}

	engine := NewEngine(registry, nil)
	result, err := engine.Grade(quiz, []SubmittedAnswer{{QuestionID: "q1", AnswerText: "deoxyribonucleic acid"}})
	require.NoError(t, err)

	assert.True(t, result.GradedAnswers[0].IsCorrect)
	assert.Equal(t, "Exact.", result.GradedAnswers[0].Feedback)
}

package grading

import (
	"math"
	"strings"
	"unicode/utf8"
)

// 各题型的固定分值策略
const (
	fillBlankContainsCredit = 0.8 // 填空题包含匹配：80% 分值
	fillBlankOverlapCredit  = 0.7 // 填空题词重叠匹配：70% 分值
	fillBlankOverlapMin     = 0.8 // 词重叠比例下限（含边界）
	textCompareCredit       = 0.8 // 通用比对包含匹配：80% 分值
	essayMinLength          = 50  // 论述题长度阈值（字符数）
	essayAttemptPoints      = 1   // 短论述的尝试分
	essayStrongRatio        = 0.8
	essayGoodRatio          = 0.5
)

const (
	feedbackCorrect    = "Correct! Well done."
	feedbackIncorrect  = "Incorrect answer."
	feedbackNoAnswer   = "No answer provided."
	feedbackMCQPartial = "Partially correct. Consider reviewing the material for a complete answer."
)

// gradeMCQ 选择题：精确匹配得全分；标准答案为作答的子串时同样给全分，
// 但反馈降级提示复习（与填空题的 80% 折扣不对称，沿用原始策略）。
func gradeMCQ(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string) {
	user := normalize(userAnswer)

	for _, key := range keys {
		if user == normalize(key.Text) {
			return true, key.PointsAwarded, feedbackCorrect
		}
	}

	// 无精确匹配时检查作答是否包含某个正确选项
	for _, key := range keys {
		if strings.Contains(user, normalize(key.Text)) {
			return true, key.PointsAwarded, feedbackMCQPartial
		}
	}

	if len(keys) > 0 {
		return false, 0, "Incorrect. The correct answer was: " + keys[0].Text
	}
	return false, 0, feedbackIncorrect
}

// 判断题的布尔词表。作答侧额外接受单字母缩写。
var (
	keyTruthy  = map[string]bool{"true": true, "yes": true, "correct": true}
	keyFalsy   = map[string]bool{"false": true, "no": true, "incorrect": true}
	userTruthy = map[string]bool{"true": true, "yes": true, "correct": true, "t": true, "y": true}
	userFalsy  = map[string]bool{"false": true, "no": true, "incorrect": true, "f": true, "n": true}
)

// gradeTrueFalse 判断题：双方归一化为布尔后比较，无部分得分
func gradeTrueFalse(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string) {
	user := normalize(userAnswer)

	for _, key := range keys {
		correct := normalize(key.Text)
		if (keyTruthy[correct] && userTruthy[user]) ||
			(keyFalsy[correct] && userFalsy[user]) {
			return true, key.PointsAwarded, feedbackCorrect
		}
	}

	if len(keys) > 0 {
		return false, 0, "Incorrect. The correct answer was: " + keys[0].Text
	}
	return false, 0, feedbackIncorrect
}

// gradeFillBlank 填空题，分档匹配，先命中先得：
//  1. 精确匹配 → 全分
//  2. 任一方向包含 → 80% 分值
//  3. 词重叠比例 ≥ 0.8 → 70% 分值
func gradeFillBlank(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string) {
	user := normalize(userAnswer)

	for _, key := range keys {
		correct := normalize(key.Text)

		if user == correct {
			return true, key.PointsAwarded, feedbackCorrect
		}

		if strings.Contains(user, correct) || strings.Contains(correct, user) {
			points := int(float64(key.PointsAwarded) * fillBlankContainsCredit)
			return true, points, "Close! The answer was slightly different than expected."
		}

		keyTokens := tokenSet(correct)
		if len(keyTokens) > 0 {
			ratio := float64(overlapCount(keyTokens, tokenSet(user))) / float64(len(keyTokens))
			if ratio >= fillBlankOverlapMin {
				points := int(float64(key.PointsAwarded) * fillBlankOverlapCredit)
				return true, points, "Partially correct. Consider reviewing the exact terminology."
			}
		}
	}

	if len(keys) > 0 {
		return false, 0, "Incorrect. Expected: " + keys[0].Text
	}
	return false, 0, feedbackIncorrect
}

// gradeEssay 论述题：非空作答不判"错"。不足 50 字符给固定尝试分；
// 否则统计标准答案关键术语在作答中的命中率并按比例给分。
func gradeEssay(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string) {
	if utf8.RuneCountInString(userAnswer) < essayMinLength {
		return true, essayAttemptPoints, "Response is too short. Please provide more detail and explanation."
	}

	userLower := strings.ToLower(userAnswer)
	matched, total := 0, 0
	for _, key := range keys {
		for _, term := range keyTerms(key.Text) {
			total++
			if strings.Contains(userLower, strings.ToLower(term)) {
				matched++
			}
		}
	}

	points := 0
	feedback := "Essay response received."
	if total > 0 {
		ratio := float64(matched) / float64(total)
		if len(keys) > 0 {
			points = int(float64(keys[0].PointsAwarded) * math.Min(ratio, 1.0))
		}

		switch {
		case ratio >= essayStrongRatio:
			feedback = "Strong response with good coverage of key concepts."
		case ratio >= essayGoodRatio:
			feedback = "Good response but could include more key concepts."
		default:
			feedback = "Response needs more key concepts and details."
		}
	}

	return true, points, feedback
}

// gradeTextCompare 通用文本比对，未注册题型的回退评分器
func gradeTextCompare(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string) {
	if len(keys) == 0 {
		return false, 0, "No answer provided or no correct answers defined."
	}

	user := normalize(userAnswer)
	for _, key := range keys {
		correct := normalize(key.Text)

		if user == correct {
			return true, key.PointsAwarded, feedbackCorrect
		}

		if strings.Contains(user, correct) || strings.Contains(correct, user) {
			points := int(float64(key.PointsAwarded) * textCompareCredit)
			return true, points, "Partially correct."
		}
	}

	return false, 0, "Incorrect. Expected: " + keys[0].Text
}

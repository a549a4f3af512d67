package grading

import "fmt"

// 整体反馈与建议的分数档位，下界均为闭区间（>=）
const (
	bandExcellent = 90
	bandGreat     = 80
	bandGood      = 70
	bandFair      = 60

	suggestTruncateLen      = 50
	misconceptionTruncate   = 60
	genericSuggestThreshold = 0.5 // 错题超过一半时追加通用建议
	foundationalThreshold   = 0.3 // 错题超过三成时建议回顾基础
)

// narrativeFeedback 分数段整体评语
func narrativeFeedback(score float64) string {
	switch {
	case score >= bandExcellent:
		return "Excellent work! You demonstrated strong understanding of the material."
	case score >= bandGreat:
		return "Great job! You have a good grasp of the concepts with room for minor improvements."
	case score >= bandGood:
		return "Good effort! You understand the main concepts but should review some areas."
	case score >= bandFair:
		return "Fair performance. Focus on reviewing the areas where you had difficulties."
	default:
		return "More practice needed. Review the material and try again."
	}
}

// confidenceLevel 置信度与评语共用同一比较方向（>=）
func confidenceLevel(score float64) string {
	switch {
	case score >= bandExcellent:
		return ConfidenceHigh
	case score >= bandGood:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// buildSuggestions 每道错题一条建议；错题过半时追加通用建议
func buildSuggestions(results []QuestionResult) []string {
	suggestions := make([]string, 0)

	incorrect := 0
	for _, r := range results {
		if !r.IsCorrect {
			incorrect++
			suggestions = append(suggestions,
				fmt.Sprintf("Review the concept related to: %s...", truncateRunes(r.QuestionText, suggestTruncateLen)))
		}
	}

	if float64(incorrect) > float64(len(results))*genericSuggestThreshold {
		suggestions = append(suggestions,
			"Consider reviewing the entire section or chapter",
			"Try additional practice questions on these topics",
			"Seek additional resources or examples for better understanding",
		)
	}

	return suggestions
}

// identifyMisconceptions 每道错题对应一个可能的误解点
func identifyMisconceptions(results []QuestionResult) []string {
	misconceptions := make([]string, 0)
	for _, r := range results {
		if !r.IsCorrect {
			misconceptions = append(misconceptions,
				fmt.Sprintf("Possible misunderstanding of: %s...", truncateRunes(r.QuestionText, misconceptionTruncate)))
		}
	}
	return misconceptions
}

// buildRecommendations 存在错题时给出复习建议；错题超三成时建议回顾基础
func buildRecommendations(results []QuestionResult) []string {
	recommendations := make([]string, 0)

	incorrect := 0
	for _, r := range results {
		if !r.IsCorrect {
			incorrect++
		}
	}

	if incorrect > 0 {
		recommendations = append(recommendations,
			"Review the material for incorrectly answered questions",
			"Practice similar questions to reinforce understanding",
		)
	}

	if float64(incorrect) > float64(len(results))*foundationalThreshold {
		recommendations = append(recommendations,
			"Consider revisiting the foundational concepts before proceeding")
	}

	return recommendations
}

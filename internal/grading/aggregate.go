package grading

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sumPoints 仅统计已产生结果的题目（被跳过/未作答的题不计入分母）
func sumPoints(results []QuestionResult) (earned, possible int) {
	for _, r := range results {
		earned += r.PointsAwarded
		possible += r.PointsPossible
	}
	return earned, possible
}

// overallScore 百分制总分，保留两位小数；无可得分时为 0
func overallScore(earned, possible int) float64 {
	if possible <= 0 {
		return 0
	}
	return round2(float64(earned) / float64(possible) * 100)
}

// buildBreakdown 按题型聚合得分，顺序与结果中首次出现的题型一致
func buildBreakdown(results []QuestionResult) []TypeBreakdown {
	index := make(map[QuestionType]int)
	breakdown := make([]TypeBreakdown, 0)

	for _, r := range results {
		i, ok := index[r.QuestionType]
		if !ok {
			i = len(breakdown)
			index[r.QuestionType] = i
			breakdown = append(breakdown, TypeBreakdown{QuestionType: r.QuestionType})
		}
		breakdown[i].PossiblePoints += r.PointsPossible
		breakdown[i].EarnedPoints += r.PointsAwarded
		breakdown[i].Count++
	}

	for i := range breakdown {
		if breakdown[i].PossiblePoints > 0 {
			breakdown[i].Percentage = round2(float64(breakdown[i].EarnedPoints) / float64(breakdown[i].PossiblePoints) * 100)
		}
	}

	return breakdown
}

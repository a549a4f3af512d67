package grading

import (
	"reflect"
	"testing"
)

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name     string
		earned   int
		possible int
		want     float64
	}{
		{"perfect", 20, 20, 100},
		{"zero possible", 0, 0, 0},
		{"two decimal rounding", 1, 3, 33.33},
		{"rounds half up", 2, 3, 66.67},
		{"zero earned", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallScore(tt.earned, tt.possible); got != tt.want {
				t.Errorf("overallScore(%d, %d) = %v, want %v", tt.earned, tt.possible, got, tt.want)
			}
		})
	}
}

func TestBuildBreakdown(t *testing.T) {
	results := []QuestionResult{
		{QuestionID: "q1", QuestionType: TypeMCQ, PointsAwarded: 10, PointsPossible: 10},
		{QuestionID: "q2", QuestionType: TypeTrueFalse, PointsAwarded: 0, PointsPossible: 5},
		{QuestionID: "q3", QuestionType: TypeMCQ, PointsAwarded: 5, PointsPossible: 10},
		{QuestionID: "q4", QuestionType: TypeEssay, PointsAwarded: 8, PointsPossible: 10},
	}

	got := buildBreakdown(results)
	want := []TypeBreakdown{
		{QuestionType: TypeMCQ, EarnedPoints: 15, PossiblePoints: 20, Count: 2, Percentage: 75},
		{QuestionType: TypeTrueFalse, EarnedPoints: 0, PossiblePoints: 5, Count: 1, Percentage: 0},
		{QuestionType: TypeEssay, EarnedPoints: 8, PossiblePoints: 10, Count: 1, Percentage: 80},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildBreakdown() = %+v, want %+v", got, want)
	}
}

func TestBuildBreakdownPreservesFirstSeenOrder(t *testing.T) {
	results := []QuestionResult{
		{QuestionID: "q1", QuestionType: TypeEssay, PointsAwarded: 1, PointsPossible: 10},
		{QuestionID: "q2", QuestionType: TypeMCQ, PointsAwarded: 10, PointsPossible: 10},
		{QuestionID: "q3", QuestionType: TypeEssay, PointsAwarded: 5, PointsPossible: 10},
	}

	got := buildBreakdown(results)
	if len(got) != 2 || got[0].QuestionType != TypeEssay || got[1].QuestionType != TypeMCQ {
		t.Errorf("breakdown order = %+v, want essay before mcq", got)
	}
}

func TestBuildBreakdownEmpty(t *testing.T) {
	got := buildBreakdown(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("buildBreakdown(nil) = %#v, want empty non-nil slice", got)
	}
}

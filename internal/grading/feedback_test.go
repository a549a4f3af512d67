package grading

import (
	"strings"
	"testing"
)

func TestNarrativeFeedbackBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excellent work! You demonstrated strong understanding of the material."},
		{90, "Excellent work! You demonstrated strong understanding of the material."}, // 边界含 90
		{89.99, "Great job! You have a good grasp of the concepts with room for minor improvements."},
		{80, "Great job! You have a good grasp of the concepts with room for minor improvements."},
		{70, "Good effort! You understand the main concepts but should review some areas."},
		{60, "Fair performance. Focus on reviewing the areas where you had difficulties."},
		{59.99, "More practice needed. Review the material and try again."},
		{0, "More practice needed. Review the material and try again."},
	}

	for _, tt := range tests {
		if got := narrativeFeedback(tt.score); got != tt.want {
			t.Errorf("narrativeFeedback(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestConfidenceLevelBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, ConfidenceHigh},
		{90, ConfidenceHigh}, // 边界含 90
		{89.99, ConfidenceMedium},
		{70, ConfidenceMedium}, // 边界含 70
		{69.99, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := confidenceLevel(tt.score); got != tt.want {
			t.Errorf("confidenceLevel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestBuildSuggestions(t *testing.T) {
	longText := strings.Repeat("why does photosynthesis require light energy ", 3)

	t.Run("one suggestion per incorrect question with truncated text", func(t *testing.T) {
		results := []QuestionResult{
			{QuestionText: longText, IsCorrect: false},
			{QuestionText: "short", IsCorrect: true},
			{QuestionText: "another", IsCorrect: true},
		}

		got := buildSuggestions(results)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		want := "Review the concept related to: " + longText[:50] + "..."
		if got[0] != want {
			t.Errorf("suggestion = %q, want %q", got[0], want)
		}
	})

	t.Run("generic suggestions appended when over half incorrect", func(t *testing.T) {
		results := []QuestionResult{
			{QuestionText: "a", IsCorrect: false},
			{QuestionText: "b", IsCorrect: false},
			{QuestionText: "c", IsCorrect: true},
		}

		got := buildSuggestions(results)
		if len(got) != 5 { // 2 条针对性 + 3 条通用
			t.Fatalf("len = %d, want 5", len(got))
		}
		if got[2] != "Consider reviewing the entire section or chapter" {
			t.Errorf("first generic suggestion = %q", got[2])
		}
	})

	t.Run("exactly half incorrect gets no generic suggestions", func(t *testing.T) {
		results := []QuestionResult{
			{QuestionText: "a", IsCorrect: false},
			{QuestionText: "b", IsCorrect: true},
		}

		if got := buildSuggestions(results); len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("all correct yields empty non-nil slice", func(t *testing.T) {
		got := buildSuggestions([]QuestionResult{{QuestionText: "a", IsCorrect: true}})
		if got == nil || len(got) != 0 {
			t.Errorf("got %#v, want empty non-nil slice", got)
		}
	})
}

func TestIdentifyMisconceptions(t *testing.T) {
	results := []QuestionResult{
		{QuestionText: "What is mitosis?", IsCorrect: false},
		{QuestionText: "What is meiosis?", IsCorrect: true},
	}

	got := identifyMisconceptions(results)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0] != "Possible misunderstanding of: What is mitosis?..." {
		t.Errorf("misconception = %q", got[0])
	}
}

func TestBuildRecommendations(t *testing.T) {
	t.Run("all correct yields none", func(t *testing.T) {
		results := []QuestionResult{
			{IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true},
		}
		if got := buildRecommendations(results); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})

	t.Run("some incorrect gets review pair", func(t *testing.T) {
		// 1/4 错题：超过零但不超过三成，只有两条基本建议
		results := []QuestionResult{
			{IsCorrect: false}, {IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true},
		}
		got := buildRecommendations(results)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2: %v", len(got), got)
		}
	})

	t.Run("over thirty percent incorrect adds foundational advice", func(t *testing.T) {
		results := []QuestionResult{
			{IsCorrect: false}, {IsCorrect: false}, {IsCorrect: true},
		}
		got := buildRecommendations(results)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3: %v", len(got), got)
		}
		if got[2] != "Consider revisiting the foundational concepts before proceeding" {
			t.Errorf("foundational advice = %q", got[2])
		}
	})
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 50, "short"},
		{strings.Repeat("x", 60), 50, strings.Repeat("x", 50)},
		{"", 50, ""},
	}

	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

package grading

import "testing"

func key(text string, points int) AnswerKeyEntry {
	return AnswerKeyEntry{Text: text, IsCorrect: true, PointsAwarded: points}
}

func TestGradeMCQ(t *testing.T) {
	q := Question{ID: "q1", Type: TypeMCQ, Points: 10}

	tests := []struct {
		name      string
		answer    string
		keys      []AnswerKeyEntry
		isCorrect bool
		points    int
		feedback  string
	}{
		{
			name:      "exact match",
			answer:    "Paris",
			keys:      []AnswerKeyEntry{key("Paris", 10)},
			isCorrect: true, points: 10, feedback: feedbackCorrect,
		},
		{
			name:      "case and whitespace insensitive",
			answer:    "  paris ",
			keys:      []AnswerKeyEntry{key("Paris", 10)},
			isCorrect: true, points: 10, feedback: feedbackCorrect,
		},
		{
			name:      "containment gives full points with downgraded feedback",
			answer:    "I think it is Paris",
			keys:      []AnswerKeyEntry{key("Paris", 10)},
			isCorrect: true, points: 10, feedback: feedbackMCQPartial,
		},
		{
			name:      "second accepted phrasing matches",
			answer:    "the city of light",
			keys:      []AnswerKeyEntry{key("Paris", 10), key("The City of Light", 8)},
			isCorrect: true, points: 8, feedback: feedbackCorrect,
		},
		{
			name:      "incorrect names first correct entry verbatim",
			answer:    "London",
			keys:      []AnswerKeyEntry{key("Paris", 10)},
			isCorrect: false, points: 0, feedback: "Incorrect. The correct answer was: Paris",
		},
		{
			name:      "no key entries",
			answer:    "anything",
			keys:      nil,
			isCorrect: false, points: 0, feedback: feedbackIncorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, points, feedback := gradeMCQ(q, tt.answer, tt.keys)
			if isCorrect != tt.isCorrect || points != tt.points || feedback != tt.feedback {
				t.Errorf("gradeMCQ(%q) = (%v, %d, %q), want (%v, %d, %q)",
					tt.answer, isCorrect, points, feedback, tt.isCorrect, tt.points, tt.feedback)
			}
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	q := Question{ID: "q1", Type: TypeTrueFalse, Points: 5}

	tests := []struct {
		name      string
		answer    string
		keyText   string
		isCorrect bool
		points    int
	}{
		{"true vs true", "true", "true", true, 5},
		{"yes vs true", "yes", "True", true, 5},
		{"single letter t", "t", "true", true, 5},
		{"single letter y", "y", "correct", true, 5},
		{"false vs false", "FALSE", "false", true, 5},
		{"n vs no", "n", "no", true, 5},
		{"true vs false", "true", "false", false, 0},
		{"f vs true", "f", "true", false, 0},
		{"unrecognized word", "maybe", "true", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, points, _ := gradeTrueFalse(q, tt.answer, []AnswerKeyEntry{key(tt.keyText, 5)})
			if isCorrect != tt.isCorrect || points != tt.points {
				t.Errorf("gradeTrueFalse(%q vs %q) = (%v, %d), want (%v, %d)",
					tt.answer, tt.keyText, isCorrect, points, tt.isCorrect, tt.points)
			}
		})
	}

	t.Run("no partial credit on true false", func(t *testing.T) {
		_, points, _ := gradeTrueFalse(q, "truthy", []AnswerKeyEntry{key("true", 5)})
		if points != 0 {
			t.Errorf("points = %d, want 0", points)
		}
	})
}

func TestGradeFillBlank(t *testing.T) {
	q := Question{ID: "q1", Type: TypeFillBlank, Points: 5}

	tests := []struct {
		name      string
		answer    string
		keys      []AnswerKeyEntry
		isCorrect bool
		points    int
		feedback  string
	}{
		{
			name:      "exact match full points",
			answer:    "Photosynthesis",
			keys:      []AnswerKeyEntry{key("photosynthesis", 5)},
			isCorrect: true, points: 5, feedback: feedbackCorrect,
		},
		{
			name:      "containment key in answer gives 80 percent floored",
			answer:    "photosynthesis process",
			keys:      []AnswerKeyEntry{key("photosynthesis", 5)},
			isCorrect: true, points: 4, // floor(5*0.8)
			feedback:  "Close! The answer was slightly different than expected.",
		},
		{
			name:      "containment answer in key gives 80 percent floored",
			answer:    "cell",
			keys:      []AnswerKeyEntry{key("cell membrane", 5)},
			isCorrect: true, points: 4,
			feedback: "Close! The answer was slightly different than expected.",
		},
		{
			name:   "token overlap at exactly 0.8 boundary gives 70 percent floored",
			answer: "energy conversion process chlorophyll extra",
			// 5 个关键词命中 4 个 → 0.8，含边界
			keys:      []AnswerKeyEntry{key("solar energy conversion process chlorophyll", 10)},
			isCorrect: true, points: 7,
			feedback: "Partially correct. Consider reviewing the exact terminology.",
		},
		{
			name:      "token overlap below boundary is incorrect",
			answer:    "energy conversion other words here",
			keys:      []AnswerKeyEntry{key("solar energy conversion process chlorophyll", 10)},
			isCorrect: false, points: 0,
			feedback: "Incorrect. Expected: solar energy conversion process chlorophyll",
		},
		{
			name:      "incorrect names first correct entry",
			answer:    "respiration",
			keys:      []AnswerKeyEntry{key("photosynthesis", 5), key("light reaction", 5)},
			isCorrect: false, points: 0,
			feedback: "Incorrect. Expected: photosynthesis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, points, feedback := gradeFillBlank(q, tt.answer, tt.keys)
			if isCorrect != tt.isCorrect || points != tt.points || feedback != tt.feedback {
				t.Errorf("gradeFillBlank(%q) = (%v, %d, %q), want (%v, %d, %q)",
					tt.answer, isCorrect, points, feedback, tt.isCorrect, tt.points, tt.feedback)
			}
		})
	}
}

func TestGradeEssay(t *testing.T) {
	q := Question{ID: "q1", Type: TypeEssay, Points: 10}

	t.Run("short answer gets fixed attempt credit", func(t *testing.T) {
		isCorrect, points, feedback := gradeEssay(q, "Plants use light.", []AnswerKeyEntry{key("photosynthesis converts light energy", 10)})
		if !isCorrect || points != essayAttemptPoints {
			t.Errorf("got (%v, %d), want (true, %d)", isCorrect, points, essayAttemptPoints)
		}
		if feedback != "Response is too short. Please provide more detail and explanation." {
			t.Errorf("unexpected feedback %q", feedback)
		}
	})

	// 10 个关键术语（均长于 3 字符），便于控制命中率
	keyText := "chlorophyll absorbs sunlight converting carbon dioxide water to glucose oxygen molecules"

	t.Run("ratio at 0.8 gives strong coverage feedback", func(t *testing.T) {
		// 命中 8/10：缺 glucose 与 oxygen
		answer := "Chlorophyll absorbs sunlight, converting carbon dioxide and water molecules into sugar in plants."
		isCorrect, points, feedback := gradeEssay(q, answer, []AnswerKeyEntry{key(keyText, 10)})
		if !isCorrect {
			t.Fatal("essay answers are never flatly wrong")
		}
		if points != 8 { // floor(10 * 0.8)
			t.Errorf("points = %d, want 8", points)
		}
		if feedback != "Strong response with good coverage of key concepts." {
			t.Errorf("unexpected feedback %q", feedback)
		}
	})

	t.Run("ratio at 0.5 gives good coverage feedback", func(t *testing.T) {
		// 命中 5/10
		answer := "The pigment chlorophyll absorbs sunlight and uses carbon dioxide somehow, I am not fully sure."
		isCorrect, points, feedback := gradeEssay(q, answer, []AnswerKeyEntry{key(keyText, 10)})
		if !isCorrect || points != 5 {
			t.Errorf("got (%v, %d), want (true, 5)", isCorrect, points)
		}
		if feedback != "Good response but could include more key concepts." {
			t.Errorf("unexpected feedback %q", feedback)
		}
	})

	t.Run("low ratio needs more concepts", func(t *testing.T) {
		answer := "This is a long answer about an entirely unrelated subject such as European medieval history."
		isCorrect, points, feedback := gradeEssay(q, answer, []AnswerKeyEntry{key(keyText, 10)})
		if !isCorrect || points != 0 {
			t.Errorf("got (%v, %d), want (true, 0)", isCorrect, points)
		}
		if feedback != "Response needs more key concepts and details." {
			t.Errorf("unexpected feedback %q", feedback)
		}
	})

	t.Run("degenerate key with no key terms yields zero points", func(t *testing.T) {
		answer := "A sufficiently long answer that goes well past the fifty character threshold easily."
		isCorrect, points, feedback := gradeEssay(q, answer, []AnswerKeyEntry{key("a b cd", 10)})
		if !isCorrect || points != 0 {
			t.Errorf("got (%v, %d), want (true, 0)", isCorrect, points)
		}
		if feedback != "Essay response received." {
			t.Errorf("unexpected feedback %q", feedback)
		}
	})
}

func TestGradeTextCompare(t *testing.T) {
	q := Question{ID: "q1", Type: "short_answer", Points: 10}

	tests := []struct {
		name      string
		answer    string
		keys      []AnswerKeyEntry
		isCorrect bool
		points    int
		feedback  string
	}{
		{
			name:      "exact match",
			answer:    "mitochondria",
			keys:      []AnswerKeyEntry{key("Mitochondria", 10)},
			isCorrect: true, points: 10, feedback: feedbackCorrect,
		},
		{
			name:      "containment gives 80 percent floored",
			answer:    "the mitochondria organelle",
			keys:      []AnswerKeyEntry{key("mitochondria", 10)},
			isCorrect: true, points: 8,
			feedback: "Partially correct.",
		},
		{
			name:      "incorrect names first entry",
			answer:    "ribosome",
			keys:      []AnswerKeyEntry{key("mitochondria", 10)},
			isCorrect: false, points: 0,
			feedback: "Incorrect. Expected: mitochondria",
		},
		{
			name:      "no key entries defined",
			answer:    "anything",
			keys:      nil,
			isCorrect: false, points: 0,
			feedback: "No answer provided or no correct answers defined.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, points, feedback := gradeTextCompare(q, tt.answer, tt.keys)
			if isCorrect != tt.isCorrect || points != tt.points || feedback != tt.feedback {
				t.Errorf("gradeTextCompare(%q) = (%v, %d, %q), want (%v, %d, %q)",
					tt.answer, isCorrect, points, feedback, tt.isCorrect, tt.points, tt.feedback)
			}
		})
	}
}

// 选择题的包含匹配给全分而填空题给八折，是沿用的原始策略差异。
// 若统一两者的策略，此测试应当显式更新。
func TestContainmentCreditAsymmetry(t *testing.T) {
	mcq := Question{ID: "q1", Type: TypeMCQ, Points: 10}
	fill := Question{ID: "q2", Type: TypeFillBlank, Points: 10}
	keys := []AnswerKeyEntry{key("photosynthesis", 10)}

	_, mcqPoints, _ := gradeMCQ(mcq, "photosynthesis process", keys)
	_, fillPoints, _ := gradeFillBlank(fill, "photosynthesis process", keys)

	if mcqPoints != 10 {
		t.Errorf("MCQ containment points = %d, want full 10", mcqPoints)
	}
	if fillPoints != 8 {
		t.Errorf("fill-blank containment points = %d, want 8 (80%%)", fillPoints)
	}
}

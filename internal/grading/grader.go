package grading

// GraderFunc 对单题作答评分。keys 只包含 is_correct 的答案条目。
// 返回：是否判对、得分、针对该题的反馈文本。
type GraderFunc func(q Question, userAnswer string, keys []AnswerKeyEntry) (bool, int, string)

// Registry 按题型注册评分器。新增题型通过 Register 注册，
// 未注册的题型回退到通用文本比对。
type Registry struct {
	graders  map[QuestionType]GraderFunc
	fallback GraderFunc
}

func NewRegistry(fallback GraderFunc) *Registry {
	return &Registry{
		graders:  make(map[QuestionType]GraderFunc),
		fallback: fallback,
	}
}

func (r *Registry) Register(t QuestionType, g GraderFunc) {
	r.graders[t] = g
}

// Lookup 返回题型对应的评分器，未注册时返回回退评分器
func (r *Registry) Lookup(t QuestionType) GraderFunc {
	if g, ok := r.graders[t]; ok {
		return g
	}
	return r.fallback
}

// DefaultRegistry 内置四种题型的规则评分器，回退为通用文本比对
func DefaultRegistry() *Registry {
	r := NewRegistry(gradeTextCompare)
	r.Register(TypeMCQ, gradeMCQ)
	r.Register(TypeTrueFalse, gradeTrueFalse)
	r.Register(TypeFillBlank, gradeFillBlank)
	r.Register(TypeEssay, gradeEssay)
	return r
}

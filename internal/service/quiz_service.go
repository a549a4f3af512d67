package service

import (
	"course_companion_backend/internal/config"
	"course_companion_backend/internal/grading"
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/repository"
	"course_companion_backend/internal/util"
	"encoding/json"
	"errors"
	"time"

	"course_companion_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	SubmissionRepo *repository.SubmissionRepository
	ProgressRepo   *repository.ProgressRepository
	Engine         *grading.Engine
	Cfg            *config.Config
	Log            *zap.Logger
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	submissionRepo *repository.SubmissionRepository,
	progressRepo *repository.ProgressRepository,
	engine *grading.Engine,
	cfg *config.Config,
	log *zap.Logger,
) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		SubmissionRepo: submissionRepo,
		ProgressRepo:   progressRepo,
		Engine:         engine,
		Cfg:            cfg,
		Log:            log,
	}
}

type AnswerEntryReq struct {
	AnswerText    string `json:"answerText" binding:"required"`
	IsCorrect     bool   `json:"isCorrect"`
	OrderIndex    int    `json:"orderIndex"`
	PointsAwarded int    `json:"pointsAwarded"`
}

type QuestionReq struct {
	QuestionText string           `json:"questionText" binding:"required"`
	QuestionType string           `json:"questionType" binding:"required"`
	OrderIndex   int              `json:"orderIndex"`
	Points       int              `json:"points"`
	Explanation  string           `json:"explanation"`
	Answers      []AnswerEntryReq `json:"answers" binding:"required,min=1"`
}

type CreateQuizReq struct {
	ContentID        string        `json:"contentId"`
	Title            string        `json:"title" binding:"required"`
	Description      string        `json:"description"`
	QuizType         string        `json:"quizType"`
	DifficultyLevel  string        `json:"difficultyLevel"`
	TimeLimitMinutes int           `json:"timeLimitMinutes"`
	PassingScore     float64       `json:"passingScore"`
	MaxAttempts      int           `json:"maxAttempts"`
	Questions        []QuestionReq `json:"questions" binding:"required,min=1"`
}

type SubmittedAnswerReq struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerText string `json:"answerText"`
}

type SubmitQuizReq struct {
	Answers          []SubmittedAnswerReq `json:"answers" binding:"required"`
	TimeTakenMinutes int                  `json:"timeTakenMinutes"`
}

type SubmitQuizResp struct {
	SubmissionID  string  `json:"submissionId"`
	AttemptNumber int     `json:"attemptNumber"`
	Passed        bool    `json:"passed"`
	PassingScore  float64 `json:"passingScore"`
	BestScore     float64 `json:"bestScore"`
	*grading.GradingResult
}

func (s *QuizService) CreateQuiz(creatorID string, req *CreateQuizReq) (*model.Quiz, error) {
	quiz := &model.Quiz{
		ContentID:        req.ContentID,
		CreatorID:        creatorID,
		Title:            req.Title,
		Description:      req.Description,
		QuizType:         model.QuizType(req.QuizType),
		DifficultyLevel:  req.DifficultyLevel,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassingScore:     req.PassingScore,
		MaxAttempts:      req.MaxAttempts,
		IsActive:         true,
	}
	if quiz.QuizType == "" {
		quiz.QuizType = model.QuizTypePractice
	}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = 60
	}
	if quiz.MaxAttempts < 0 {
		quiz.MaxAttempts = s.Cfg.Quiz.DefaultMaxAttempts
	}

	for _, q := range req.Questions {
		question := model.QuizQuestion{
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			OrderIndex:   q.OrderIndex,
			Points:       q.Points,
			Explanation:  q.Explanation,
		}
		if question.Points <= 0 {
			question.Points = 1
		}
		for _, a := range q.Answers {
			entry := model.QuizAnswer{
				AnswerText:    a.AnswerText,
				IsCorrect:     a.IsCorrect,
				OrderIndex:    a.OrderIndex,
				PointsAwarded: a.PointsAwarded,
			}
			// 正确条目未标分值时默认为题目满分
			if entry.IsCorrect && entry.PointsAwarded <= 0 {
				entry.PointsAwarded = question.Points
			}
			question.Answers = append(question.Answers, entry)
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// AddQuestion 向既有测验追加题目（含答案条目）
func (s *QuizService) AddQuestion(quizID string, claims *util.Claims, req *QuestionReq) (*model.QuizQuestion, error) {
	quiz, err := s.loadOwnedQuiz(quizID, claims)
	if err != nil {
		return nil, err
	}

	question := model.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		OrderIndex:   req.OrderIndex,
		Points:       req.Points,
		Explanation:  req.Explanation,
	}
	if question.Points <= 0 {
		question.Points = 1
	}
	for _, a := range req.Answers {
		entry := model.QuizAnswer{
			AnswerText:    a.AnswerText,
			IsCorrect:     a.IsCorrect,
			OrderIndex:    a.OrderIndex,
			PointsAwarded: a.PointsAwarded,
		}
		if entry.IsCorrect && entry.PointsAwarded <= 0 {
			entry.PointsAwarded = question.Points
		}
		question.Answers = append(question.Answers, entry)
	}

	if err := s.QuizRepo.CreateQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

type UpdateQuestionReq struct {
	QuestionText string `json:"questionText"`
	OrderIndex   *int   `json:"orderIndex"`
	Points       int    `json:"points"`
	Explanation  string `json:"explanation"`
}

// UpdateQuestion 修改题干、分值或序号，不触碰答案条目
func (s *QuizService) UpdateQuestion(questionID string, claims *util.Claims, req *UpdateQuestionReq) (*model.QuizQuestion, error) {
	question, err := s.loadOwnedQuestion(questionID, claims)
	if err != nil {
		return nil, err
	}

	if req.QuestionText != "" {
		question.QuestionText = req.QuestionText
	}
	if req.OrderIndex != nil {
		question.OrderIndex = *req.OrderIndex
	}
	if req.Points > 0 {
		question.Points = req.Points
	}
	if req.Explanation != "" {
		question.Explanation = req.Explanation
	}

	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion 删除题目及其全部答案条目
func (s *QuizService) DeleteQuestion(questionID string, claims *util.Claims) error {
	if _, err := s.loadOwnedQuestion(questionID, claims); err != nil {
		return err
	}
	return s.QuizRepo.DeleteQuestion(questionID)
}

// AddAnswer 向题目追加答案条目
func (s *QuizService) AddAnswer(questionID string, claims *util.Claims, req *AnswerEntryReq) (*model.QuizAnswer, error) {
	question, err := s.loadOwnedQuestion(questionID, claims)
	if err != nil {
		return nil, err
	}

	entry := model.QuizAnswer{
		QuestionID:    question.ID,
		AnswerText:    req.AnswerText,
		IsCorrect:     req.IsCorrect,
		OrderIndex:    req.OrderIndex,
		PointsAwarded: req.PointsAwarded,
	}
	if entry.IsCorrect && entry.PointsAwarded <= 0 {
		entry.PointsAwarded = question.Points
	}

	if err := s.QuizRepo.CreateAnswer(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteAnswer 删除单个答案条目
func (s *QuizService) DeleteAnswer(answerID string, claims *util.Claims) error {
	answer, err := s.QuizRepo.FindAnswerByID(answerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAnswerNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.loadOwnedQuestion(answer.QuestionID, claims); err != nil {
		return err
	}
	return s.QuizRepo.DeleteAnswer(answerID)
}

func (s *QuizService) loadOwnedQuiz(quizID string, claims *util.Claims) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if quiz.CreatorID != claims.UserID && claims.Role != model.RoleAdmin {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

func (s *QuizService) loadOwnedQuestion(questionID string, claims *util.Claims) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.loadOwnedQuiz(question.QuizID, claims); err != nil {
		return nil, err
	}
	return question, nil
}

// GetQuizForTaking 学生视角的试卷：隐藏正确答案与条目分值
func (s *QuizService) GetQuizForTaking(quizID string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDWithQuestions(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizInactive
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		// 非选择题不下发候选答案
		if q.QuestionType != string(grading.TypeMCQ) && q.QuestionType != string(grading.TypeTrueFalse) {
			q.Answers = nil
			continue
		}
		for j := range q.Answers {
			q.Answers[j].IsCorrect = false
			q.Answers[j].PointsAwarded = 0
		}
	}

	return quiz, nil
}

func (s *QuizService) GetQuizDetail(quizID string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDWithQuestions(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// SubmitQuiz 提交作答并即时评分
func (s *QuizService) SubmitQuiz(userID, quizID string, req *SubmitQuizReq) (*SubmitQuizResp, error) {
	// 1. 加载试卷与题目
	quiz, err := s.QuizRepo.FindByIDWithQuestions(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizInactive
	}
	if len(quiz.Questions) == 0 {
		return nil, util.ErrQuizNoQuestions
	}

	// 2. 作答次数检查（MaxAttempts 为 0 表示不限次数）
	attempts, err := s.SubmissionRepo.CountByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.MaxAttempts > 0 && attempts >= int64(quiz.MaxAttempts) {
		return nil, util.ErrMaxAttemptsReached
	}

	// 3. 规则评分
	gradingQuiz := toGradingQuiz(quiz)
	answers := make([]grading.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, grading.SubmittedAnswer{
			QuestionID: a.QuestionID,
			AnswerText: a.AnswerText,
		})
	}

	start := time.Now()
	result, err := s.Engine.Grade(gradingQuiz, answers)
	monitoring.GradingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var verr *grading.ValidationError
		if errors.As(err, &verr) {
			return nil, util.ErrQuizNoQuestions
		}
		return nil, err
	}

	// 4. 持久化提交与逐题结果
	feedbackData, _ := json.Marshal(result)
	submission := &model.QuizSubmission{
		QuizID:           quizID,
		UserID:           userID,
		Score:            result.EarnedPoints,
		MaxScore:         result.MaxScore,
		Percentage:       result.OverallScore,
		AttemptNumber:    int(attempts) + 1,
		TimeTakenMinutes: req.TimeTakenMinutes,
		IsCompleted:      true,
		GradingMethod:    result.GradingMethod,
		FeedbackData:     feedbackData,
		SubmittedAt:      time.Now(),
	}

	submissionAnswers := make([]model.QuizSubmissionAnswer, 0, len(result.GradedAnswers))
	for _, r := range result.GradedAnswers {
		submissionAnswers = append(submissionAnswers, model.QuizSubmissionAnswer{
			QuestionID:   r.QuestionID,
			AnswerText:   r.UserAnswer,
			IsCorrect:    r.IsCorrect,
			PointsEarned: r.PointsAwarded,
			Feedback:     r.Feedback,
		})
	}

	if err := s.SubmissionRepo.CreateWithAnswers(submission, submissionAnswers); err != nil {
		return nil, err
	}

	// 5. 同步学习进度
	if quiz.ContentID != "" {
		if err := s.ProgressRepo.RecordQuizResult(userID, quiz.ContentID, result.OverallScore); err != nil {
			s.Log.Warn("failed to record quiz progress",
				zap.String("userId", userID),
				zap.String("quizId", quizID),
				zap.Error(err))
		}
	}

	best, err := s.SubmissionRepo.BestScoreByUserAndQuiz(userID, quizID)
	if err != nil {
		best = result.OverallScore
	}

	passed := result.OverallScore >= quiz.PassingScore
	monitoring.QuizSubmissionCounter.WithLabelValues(string(quiz.QuizType), boolLabel(passed)).Inc()

	s.Log.Info("quiz submission graded",
		zap.String("userId", userID),
		zap.String("quizId", quizID),
		zap.String("submissionId", submission.ID),
		zap.Float64("score", result.OverallScore),
		zap.Bool("passed", passed))

	return &SubmitQuizResp{
		SubmissionID:  submission.ID,
		AttemptNumber: submission.AttemptNumber,
		Passed:        passed,
		PassingScore:  quiz.PassingScore,
		BestScore:     best,
		GradingResult: result,
	}, nil
}

// GetSubmission 查询提交详情，仅本人或教师可见
func (s *QuizService) GetSubmission(submissionID string, claims *util.Claims) (*model.QuizSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	if submission.UserID != claims.UserID &&
		claims.Role != model.RoleInstructor && claims.Role != model.RoleAdmin {
		return nil, util.ErrPermissionDenied
	}
	return submission, nil
}

func (s *QuizService) ListUserSubmissions(userID string, page, limit int) ([]model.QuizSubmission, int64, error) {
	return s.SubmissionRepo.ListByUser(userID, page, limit)
}

// GetLatestResult 当前用户在某测验上的最近一次评分结果
func (s *QuizService) GetLatestResult(userID, quizID string) (*model.QuizSubmission, error) {
	submission, err := s.SubmissionRepo.LatestByUserAndQuiz(userID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoSubmissions
	}
	return submission, err
}

// QuizHistory 作答历史及汇总统计
type QuizHistory struct {
	Submissions     []model.QuizSubmission `json:"submissions"`
	Total           int64                  `json:"total"`
	AverageScore    float64                `json:"averageScore"`
	BestScore       float64                `json:"bestScore"`
	PerformanceBand string                 `json:"performanceBand"`
}

// GetQuizHistory 查询用户作答历史，仅本人或教师可见
func (s *QuizService) GetQuizHistory(targetUserID string, claims *util.Claims, page, limit int) (*QuizHistory, error) {
	if targetUserID != claims.UserID &&
		claims.Role != model.RoleInstructor && claims.Role != model.RoleAdmin {
		return nil, util.ErrPermissionDenied
	}

	submissions, _, err := s.SubmissionRepo.ListByUser(targetUserID, page, limit)
	if err != nil {
		return nil, err
	}
	stats, err := s.SubmissionRepo.StatsByUser(targetUserID)
	if err != nil {
		return nil, err
	}

	return &QuizHistory{
		Submissions:     submissions,
		Total:           stats.Total,
		AverageScore:    stats.AverageScore,
		BestScore:       stats.BestScore,
		PerformanceBand: performanceBand(stats.AverageScore),
	}, nil
}

func performanceBand(avg float64) string {
	switch {
	case avg >= 90:
		return "excellent"
	case avg >= 75:
		return "good"
	case avg >= 60:
		return "satisfactory"
	default:
		return "needs_improvement"
	}
}

func (s *QuizService) ListQuizSubmissions(quizID string, page, limit int) ([]model.QuizSubmission, int64, error) {
	return s.SubmissionRepo.ListByQuiz(quizID, page, limit)
}

func (s *QuizService) ListByContent(contentID string) ([]model.Quiz, error) {
	return s.QuizRepo.ListByContent(contentID, true)
}

func (s *QuizService) ListQuizzes(page, limit int) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(page, limit)
}

func (s *QuizService) DeleteQuiz(quizID string, claims *util.Claims) error {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuizNotFound
	}
	if err != nil {
		return err
	}
	if quiz.CreatorID != claims.UserID && claims.Role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}
	return s.QuizRepo.Delete(quizID)
}

// toGradingQuiz 把持久化模型映射为评分引擎的输入
func toGradingQuiz(quiz *model.Quiz) grading.Quiz {
	out := grading.Quiz{
		ID:    quiz.ID,
		Title: quiz.Title,
	}
	for _, q := range quiz.Questions {
		question := grading.Question{
			ID:     q.ID,
			Text:   q.QuestionText,
			Type:   grading.QuestionType(q.QuestionType),
			Order:  q.OrderIndex,
			Points: q.Points,
		}
		for _, a := range q.Answers {
			question.AnswerKey = append(question.AnswerKey, grading.AnswerKeyEntry{
				Text:          a.AnswerText,
				IsCorrect:     a.IsCorrect,
				PointsAwarded: a.PointsAwarded,
			})
		}
		out.Questions = append(out.Questions, question)
	}
	return out
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizInactive        = errors.New("quiz is not active")
	ErrQuizNoQuestions     = errors.New("quiz has no questions")
	ErrMaxAttemptsReached  = errors.New("maximum attempts reached for this quiz")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAnswerNotFound      = errors.New("answer entry not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrNoSubmissions       = errors.New("no submissions for this quiz yet")
	ErrContentNotFound     = errors.New("content not found")
	ErrFeatureNotAvailable = errors.New("feature not available on current subscription tier")
	ErrUsageLimitReached   = errors.New("daily usage limit reached for this feature")
)

package controller

import (
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 教师创建测验及其题目与标准答案
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateQuizReq true "测验定义"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// ListQuizzes godoc
// @Summary 测验列表
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	quizzes, total, err := c.QuizService.ListQuizzes(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetQuiz godoc
// @Summary 获取测验（作答视图）
// @Description 学生视角的试卷，不包含正确答案标记
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuizForTaking(ctx.Param("id"))
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// GetQuizDetail godoc
// @Summary 获取测验（教师视图）
// @Description 包含答案与分值的完整试卷定义
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/detail [get]
func (c *QuizController) GetQuizDetail(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuizDetail(ctx.Param("id"))
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// SubmitQuiz godoc
// @Summary 提交测验作答
// @Description 规则引擎即时评分，返回总分、逐题反馈与学习建议
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body service.SubmitQuizReq true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitQuizResp} "评分结果"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "已达最大作答次数"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QuizService.SubmitQuiz(claims.UserID, ctx.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMaxAttemptsReached):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrQuizNoQuestions):
			util.BadRequest(ctx, err.Error())
		default:
			c.writeQuizError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// GetSubmission godoc
// @Summary 提交详情
// @Description 查询一次提交的逐题结果与反馈，仅本人或教师可见
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "提交ID"
// @Success 200 {object} util.Response{data=model.QuizSubmission} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/submissions/{id} [get]
func (c *QuizController) GetSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.QuizService.GetSubmission(ctx.Param("id"), claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, submission)
}

// ListMySubmissions godoc
// @Summary 我的作答历史
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/submissions [get]
func (c *QuizController) ListMySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	submissions, total, err := c.QuizService.ListUserSubmissions(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  submissions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ListQuizSubmissions godoc
// @Summary 测验的全部提交（教师）
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/quizzes/{id}/submissions [get]
func (c *QuizController) ListQuizSubmissions(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	submissions, total, err := c.QuizService.ListQuizSubmissions(ctx.Param("id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  submissions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Description 仅创建者或管理员可删除，级联清理题目与答案
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.DeleteQuiz(ctx.Param("id"), claims); err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// AddQuestion godoc
// @Summary 追加题目
// @Description 向既有测验追加题目及其答案条目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body service.QuestionReq true "题目定义"
// @Success 201 {object} util.Response{data=model.QuizQuestion} "创建成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.AddQuestion(ctx.Param("id"), claims, &req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 修改题目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   body body service.UpdateQuestionReq true "修改内容"
// @Success 200 {object} util.Response{data=model.QuizQuestion} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(ctx.Param("id"), claims, &req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Description 删除题目及其全部答案条目
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.DeleteQuestion(ctx.Param("id"), claims); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddAnswer godoc
// @Summary 追加答案条目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   body body service.AnswerEntryReq true "答案条目"
// @Success 201 {object} util.Response{data=model.QuizAnswer} "创建成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id}/answers [post]
func (c *QuizController) AddAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerEntryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.QuizService.AddAnswer(ctx.Param("id"), claims, &req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// DeleteAnswer godoc
// @Summary 删除答案条目
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "答案条目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "条目不存在"
// @Router /api/answers/{id} [delete]
func (c *QuizController) DeleteAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.DeleteAnswer(ctx.Param("id"), claims); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetLatestResult godoc
// @Summary 我的最近评分结果
// @Description 当前用户在该测验上最近一次提交的逐题结果
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizSubmission} "成功"
// @Failure 404 {object} util.Response "尚无提交"
// @Router /api/quizzes/{id}/results [get]
func (c *QuizController) GetLatestResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.QuizService.GetLatestResult(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrNoSubmissions) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// GetQuizHistory godoc
// @Summary 用户作答历史
// @Description 作答历史及汇总统计（平均分、最好成绩、表现档位），仅本人或教师可查
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=service.QuizHistory} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/users/{id}/quiz-history [get]
func (c *QuizController) GetQuizHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	history, err := c.QuizService.GetQuizHistory(ctx.Param("id"), claims, page, limit)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, history)
}

func (c *QuizController) writeAuthoringError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrAnswerNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *QuizController) writeQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizInactive):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

package controller

import (
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
	QuizService    *service.QuizService
}

func NewContentController(contentService *service.ContentService, quizService *service.QuizService) *ContentController {
	return &ContentController{
		ContentService: contentService,
		QuizService:    quizService,
	}
}

// CreateContent godoc
// @Summary 创建课程内容
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateContentReq true "内容定义"
// @Success 201 {object} util.Response{data=model.Content} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/contents [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateContentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentService.Create(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, content)
}

// ListContents godoc
// @Summary 课程内容列表
// @Description 学生只能看到已发布的内容
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/contents [get]
func (c *ContentController) ListContents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)
	publishedOnly := claims.Role == model.RoleStudent

	contents, total, err := c.ContentService.List(page, limit, publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  contents,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetContent godoc
// @Summary 内容详情
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "内容ID"
// @Success 200 {object} util.Response{data=model.Content} "成功"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id} [get]
func (c *ContentController) GetContent(ctx *gin.Context) {
	content, err := c.ContentService.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, content)
}

// ListContentQuizzes godoc
// @Summary 内容关联的测验
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "内容ID"
// @Success 200 {object} util.Response{data=[]model.Quiz} "成功"
// @Router /api/contents/{id}/quizzes [get]
func (c *ContentController) ListContentQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListByContent(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// PublishContent godoc
// @Summary 发布内容
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "内容ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/publish [post]
func (c *ContentController) PublishContent(ctx *gin.Context) {
	if err := c.ContentService.Publish(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadAttachment godoc
// @Summary 上传内容附件
// @Description 支持 PDF、图片与文本附件，深度校验 MIME 类型
// @Tags 内容
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "内容ID"
// @Param   file formData file true "附件文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件类型不允许"
// @Router /api/contents/{id}/attachment [post]
func (c *ContentController) UploadAttachment(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.ContentService.UploadAttachment(
		ctx.Request.Context(),
		ctx.Param("id"),
		fileHeader.Filename,
		file,
		fileHeader.Size,
	)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// DeleteContent godoc
// @Summary 删除内容
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "内容ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/contents/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	if err := c.ContentService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

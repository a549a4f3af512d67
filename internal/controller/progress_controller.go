package controller

import (
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetSummary godoc
// @Summary 学习进度概览
// @Description 用户在全部内容上的进度、完成数与平均最佳成绩
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressSummary} "成功"
// @Router /api/progress [get]
func (c *ProgressController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.GetSummary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// GetContentProgress godoc
// @Summary 单个内容的进度
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   contentId path string true "内容ID"
// @Success 200 {object} util.Response{data=model.UserProgress} "成功"
// @Router /api/progress/{contentId} [get]
func (c *ProgressController) GetContentProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetContentProgress(claims.UserID, ctx.Param("contentId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

type UpdateCompletionReq struct {
	Percent float64 `json:"percent" binding:"min=0,max=100"`
}

// UpdateCompletion godoc
// @Summary 上报内容完成度
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   contentId path string true "内容ID"
// @Param   body body UpdateCompletionReq true "完成百分比"
// @Success 200 {object} util.Response "成功"
// @Router /api/progress/{contentId} [put]
func (c *ProgressController) UpdateCompletion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateCompletionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.UpdateCompletion(claims.UserID, ctx.Param("contentId"), req.Percent); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

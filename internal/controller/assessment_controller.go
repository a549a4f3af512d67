package controller

import (
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// GradeFreeform godoc
// @Summary 自由作答即席评分
// @Description 按关键概念命中率对自由文本评分，不落库（高级功能）
// @Tags 评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.FreeformGradeReq true "作答与关键概念"
// @Success 200 {object} util.Response{data=service.FreeformGradeResp} "评分结果"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "当前档位不可用"
// @Failure 429 {object} util.Response "超出每日限额"
// @Router /api/assessments/grade [post]
func (c *AssessmentController) GradeFreeform(ctx *gin.Context) {
	var req service.FreeformGradeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AssessmentService.GradeFreeform(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

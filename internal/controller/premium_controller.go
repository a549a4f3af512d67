package controller

import (
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type PremiumController struct {
	PremiumService *service.PremiumService
}

func NewPremiumController(premiumService *service.PremiumService) *PremiumController {
	return &PremiumController{PremiumService: premiumService}
}

// GetSubscription godoc
// @Summary 当前订阅状态
// @Tags 订阅
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/subscription [get]
func (c *PremiumController) GetSubscription(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tier := c.PremiumService.CurrentTier(claims.UserID)
	util.Success(ctx, gin.H{"tier": tier})
}

type UpgradeReq struct {
	Tier         string `json:"tier" binding:"required,oneof=free premium pro"`
	DurationDays int    `json:"durationDays"`
}

// Upgrade godoc
// @Summary 变更订阅档位
// @Description 停用旧订阅并写入新档位；支付对接不在本服务范围内
// @Tags 订阅
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpgradeReq true "目标档位"
// @Success 200 {object} util.Response{data=model.Subscription} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/subscription/upgrade [post]
func (c *PremiumController) Upgrade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpgradeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var expiresAt *time.Time
	if req.DurationDays > 0 {
		t := time.Now().AddDate(0, 0, req.DurationDays)
		expiresAt = &t
	}

	sub, err := c.PremiumService.UpgradeTier(claims.UserID, model.SubscriptionTier(req.Tier), expiresAt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

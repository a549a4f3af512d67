package controller

import (
	"course_companion_backend/internal/service"
	"course_companion_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService    *service.AuthService
	PremiumService *service.PremiumService
}

func NewAuthController(authService *service.AuthService, premiumService *service.PremiumService) *AuthController {
	return &AuthController{
		AuthService:    authService,
		PremiumService: premiumService,
	}
}

// Register godoc
// @Summary 注册新用户
// @Description 使用邮箱和用户名注册新账号，默认学生角色与免费档位
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterReq true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(&req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, http.StatusConflict, "该邮箱已被注册")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户身份并返回JWT令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginReq true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":               user.ID,
			"email":            user.Email,
			"username":         user.Username,
			"role":             user.Role,
			"subscriptionTier": user.SubscriptionTier,
		},
	})
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Description 获取当前已认证用户的个人资料与订阅档位
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tier := c.PremiumService.CurrentTier(user.ID)

	util.Success(ctx, gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"username":         user.Username,
		"fullName":         user.FullName,
		"role":             user.Role,
		"subscriptionTier": tier,
		"language":         user.Language,
		"createdAt":        user.CreatedAt,
	})
}

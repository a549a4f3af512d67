package controller

import (
	"course_companion_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary 健康检查
// @Description 检查服务及其依赖（数据库、Redis）状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{
		"database": "up",
		"redis":    "up",
	}

	sqlDB, err := c.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		components["database"] = "down"
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			components["redis"] = "down"
		}
	}

	if components["database"] == "down" {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}

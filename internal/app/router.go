package app

import (
	"course_companion_backend/docs"
	"course_companion_backend/internal/config"
	"course_companion_backend/internal/middleware"
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/service"

	"course_companion_backend/pkg/monitoring"
	"course_companion_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 订阅
		authGroup.GET("/subscription", c.premium.GetSubscription)
		authGroup.POST("/subscription/upgrade", c.premium.Upgrade)

		// 内容
		authGroup.GET("/contents", c.content.ListContents)
		authGroup.GET("/contents/:id", c.content.GetContent)
		authGroup.GET("/contents/:id/quizzes", c.content.ListContentQuizzes)

		// 测验：作答受档位每日限额控制
		authGroup.GET("/quizzes", c.quiz.ListQuizzes)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
		authGroup.POST("/quizzes/:id/submit",
			middleware.RequireFeature(s.premium, service.FeatureQuizSubmission),
			middleware.TrackUsage(s.premium, service.FeatureQuizSubmission),
			c.quiz.SubmitQuiz)

		// 提交记录
		authGroup.GET("/quizzes/:id/results", c.quiz.GetLatestResult)
		authGroup.GET("/submissions", c.quiz.ListMySubmissions)
		authGroup.GET("/submissions/:id", c.quiz.GetSubmission)
		authGroup.GET("/users/:id/quiz-history", c.quiz.GetQuizHistory)

		// 自由作答评分（高级功能）
		authGroup.POST("/assessments/grade",
			middleware.RequireFeature(s.premium, service.FeatureEssayFeedback),
			middleware.TrackUsage(s.premium, service.FeatureEssayFeedback),
			c.assessment.GradeFreeform)

		// 学习进度
		authGroup.GET("/progress",
			middleware.RequireFeature(s.premium, service.FeatureProgressAnalytics),
			c.progress.GetSummary)
		authGroup.GET("/progress/:contentId", c.progress.GetContentProgress)
		authGroup.PUT("/progress/:contentId", c.progress.UpdateCompletion)
	}

	// 3. 教师/管理员接口
	teacherGroup := router.Group("/api")
	teacherGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleInstructor))
	{
		teacherGroup.POST("/quizzes", c.quiz.CreateQuiz)
		teacherGroup.GET("/quizzes/:id/detail", c.quiz.GetQuizDetail)
		teacherGroup.GET("/quizzes/:id/submissions", c.quiz.ListQuizSubmissions)
		teacherGroup.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		teacherGroup.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		teacherGroup.PUT("/questions/:id", c.quiz.UpdateQuestion)
		teacherGroup.DELETE("/questions/:id", c.quiz.DeleteQuestion)
		teacherGroup.POST("/questions/:id/answers", c.quiz.AddAnswer)
		teacherGroup.DELETE("/answers/:id", c.quiz.DeleteAnswer)

		teacherGroup.POST("/contents", c.content.CreateContent)
		teacherGroup.POST("/contents/:id/publish", c.content.PublishContent)
		teacherGroup.POST("/contents/:id/attachment",
			security.MaxBodySize(20<<20), // 附件上限 20MB
			c.content.UploadAttachment)
		teacherGroup.DELETE("/contents/:id", c.content.DeleteContent)
	}
}

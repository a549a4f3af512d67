package app

import (
	"course_companion_backend/internal/config"
	"course_companion_backend/internal/controller"
	"course_companion_backend/internal/grading"
	"course_companion_backend/internal/repository"
	"course_companion_backend/internal/service"
	"course_companion_backend/pkg/configwatcher"
	"course_companion_backend/pkg/database"
	"course_companion_backend/pkg/logger"
	"course_companion_backend/pkg/monitoring"
	"course_companion_backend/pkg/security"
	"course_companion_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	quiz         *repository.QuizRepository
	submission   *repository.SubmissionRepository
	subscription *repository.SubscriptionRepository
	usage        *repository.UsageRepository
	content      *repository.ContentRepository
	progress     *repository.ProgressRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	quiz       *service.QuizService
	premium    *service.PremiumService
	assessment *service.AssessmentService
	content    *service.ContentService
	progress   *service.ProgressService
}

type controllers struct {
	auth       *controller.AuthController
	quiz       *controller.QuizController
	assessment *controller.AssessmentController
	content    *controller.ContentController
	progress   *controller.ProgressController
	premium    *controller.PremiumController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		quiz:         repository.NewQuizRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		usage:        repository.NewUsageRepository(db),
		content:      repository.NewContentRepository(db),
		progress:     repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	engine := grading.NewEngine(grading.DefaultRegistry(), logger.Log)

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.submission, repos.progress, engine, cfg, logger.Log)
	s.premium = service.NewPremiumService(service.DefaultAccessPolicy(), repos.subscription, repos.usage, repos.user, rdb, logger.Log)
	s.assessment = service.NewAssessmentService(engine, logger.Log)
	s.content = service.NewContentService(repos.content, s.storage)
	s.progress = service.NewProgressService(repos.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.premium),
		quiz:       controller.NewQuizController(s.quiz),
		assessment: controller.NewAssessmentController(s.assessment),
		content:    controller.NewContentController(s.content, s.quiz),
		progress:   controller.NewProgressController(s.progress),
		premium:    controller.NewPremiumController(s.premium),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("course-companion", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 监听配置文件变更，热更新可动态调整的配置项
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(cfg interface{}) {
		newCfg, ok := cfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		a.Config.Quiz = newCfg.Quiz
		a.Config.RateLimit = newCfg.RateLimit
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

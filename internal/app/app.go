package app

import (
	"fmt"
	"time"

	"dangnyang_backend/internal/auth"
	"dangnyang_backend/internal/config"
	"dangnyang_backend/internal/database"
	"dangnyang_backend/internal/email"
	"dangnyang_backend/internal/handlers"
	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/middleware"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/routes"
	"dangnyang_backend/internal/services"
	"dangnyang_backend/internal/social"
	"dangnyang_backend/internal/storage"
	"dangnyang_backend/internal/validator"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run wires the whole application together and starts the HTTP server.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.Env)
	log := logger.GetLogger()

	db, err := database.Connect(cfg.Database.DSN, cfg.Server.Env)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database ready")

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	router := SetupRouter(cfg, db, redisClient, store)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine with every dependency injected.
func SetupRouter(cfg *config.Config, db *gorm.DB, redisClient *goredis.Client, store storage.Storage) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	issuer := auth.NewTokenIssuer(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLMinutes)*time.Minute,
	)

	serviceContainer := initializeServices(cfg, db, redisClient, store, issuer)
	appHandlers := initializeHandlers(serviceContainer)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	authMW := middleware.NewAuthMiddleware(issuer)
	routes.Setup(router, appHandlers, authMW)

	return router
}

func initializeServices(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *goredis.Client,
	store storage.Storage,
	issuer *auth.TokenIssuer,
) *services.ServiceContainer {
	v := validator.New()

	userRepo := repositories.NewUserRepository(db)
	shelterRepo := repositories.NewShelterRepository(db)
	recruitmentRepo := repositories.NewRecruitmentRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	tokenRepo := repositories.NewTokenRepository(redisClient)

	mailer := email.NewSMTPMailer(email.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
		FromName: cfg.Email.FromName,
	})
	kakaoClient := social.NewKakaoClient(cfg.Kakao.UserInfoURL)

	return &services.ServiceContainer{
		AuthService:        services.NewAuthService(userRepo, tokenRepo, issuer, v, mailer, kakaoClient),
		UserService:        services.NewUserService(userRepo, v),
		ShelterService:     services.NewShelterService(shelterRepo, v),
		RecruitmentService: services.NewRecruitmentService(recruitmentRepo, shelterRepo, v),
		ApplicationService: services.NewApplicationService(applicationRepo, recruitmentRepo, shelterRepo, userRepo, v),
		HistoryService:     services.NewHistoryService(historyRepo, v),
		UploadService:      services.NewUploadService(store, userRepo, shelterRepo, recruitmentRepo),
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	base := &handlers.BaseHandler{}

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, sc.AuthService),
		UserHandler:        handlers.NewUserHandler(base, sc.UserService, sc.UploadService),
		ShelterHandler:     handlers.NewShelterHandler(base, sc.ShelterService, sc.UploadService),
		RecruitmentHandler: handlers.NewRecruitmentHandler(base, sc.RecruitmentService, sc.ApplicationService, sc.UploadService),
		ApplicationHandler: handlers.NewApplicationHandler(base, sc.ApplicationService),
		HistoryHandler:     handlers.NewHistoryHandler(base, sc.HistoryService),
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gco-office/gco-api/api/swagger"
	"github.com/gco-office/gco-api/internal/handler"
	internalmiddleware "github.com/gco-office/gco-api/internal/middleware"
	"github.com/gco-office/gco-api/internal/repository"
	"github.com/gco-office/gco-api/internal/service"
	"github.com/gco-office/gco-api/pkg/cache"
	"github.com/gco-office/gco-api/pkg/config"
	"github.com/gco-office/gco-api/pkg/database"
	"github.com/gco-office/gco-api/pkg/logger"
	corsmiddleware "github.com/gco-office/gco-api/pkg/middleware/cors"
	reqidmiddleware "github.com/gco-office/gco-api/pkg/middleware/requestid"
	"github.com/gco-office/gco-api/pkg/storage"
)

// @title GCO Office API
// @version 1.0.0
// @description Guidance and campus office services API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
			redisClient = nil
		}
	}

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload directory", "error", err)
	}

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewDocumentRequestRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	logbookRepo := repository.NewLogbookRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	qrRepo := repository.NewQRResourceRepository(db)
	reportRepo := repository.NewReportRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	importLogRepo := repository.NewImportLogRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	importStore := repository.NewImportStore(db, requestRepo, ticketRepo, logbookRepo, surveyRepo, importLogRepo)

	var allocator service.TrackingAllocator
	if cfg.Sequence.UseCounter {
		allocator = service.NewCounterTrackingAllocator(sequenceRepo)
	} else {
		allocator = service.NewScanTrackingAllocator(requestRepo)
	}

	mailer := service.NewLogMailer(logr)

	// Services.
	authSvc := service.NewAuthService(userRepo, mailer, validator.New(), logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
		MailEnabled: cfg.Mail.Enabled,
		VerifyURL:   cfg.Mail.VerifyURL,
	})
	requestSvc := service.NewDocumentRequestService(requestRepo, allocator, mailer, logr)
	ticketSvc := service.NewTicketService(ticketRepo, mailer, logr)
	logbookSvc := service.NewLogbookService(logbookRepo, logr)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, mailer, logr)
	surveySvc := service.NewSurveyService(surveyRepo, logr)
	importSvc := service.NewImportService(importStore, allocator, ticketRepo, surveyRepo, logr)
	exportSvc := service.NewExportService(requestRepo, ticketRepo, logbookRepo, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr)
	reportSvc := service.NewReportService(reportRepo, logr)
	qrSvc := service.NewQRResourceService(qrRepo, uploadStore, logr)
	userSvc := service.NewUserService(userRepo, logr)
	metricsSvc := service.NewMetricsService()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Imports.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, handler.Handlers{
		Auth:             handler.NewAuthHandler(authSvc),
		DocumentRequests: handler.NewDocumentRequestHandler(requestSvc),
		Imports:          handler.NewImportHandler(importSvc, importLogRepo, metricsSvc, dashboardSvc),
		Exports:          handler.NewExportHandler(exportSvc, metricsSvc),
		Tickets:          handler.NewTicketHandler(ticketSvc),
		Logbook:          handler.NewLogbookHandler(logbookSvc),
		Appointments:     handler.NewAppointmentHandler(appointmentSvc),
		Surveys:          handler.NewSurveyHandler(surveySvc),
		Dashboard:        handler.NewDashboardHandler(dashboardSvc),
		Reports:          handler.NewReportHandler(reportSvc, metricsSvc),
		QRResources:      handler.NewQRResourceHandler(qrSvc),
		Users:            handler.NewUserHandler(userSvc),
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
	_ = cacheRepo.Close()
}

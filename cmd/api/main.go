package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"valuepm/config"
	"valuepm/internal/api"
	"valuepm/internal/cache"
	"valuepm/internal/db"
	"valuepm/internal/mq"
	rediscli "valuepm/internal/redis"
	"valuepm/internal/repository"
	"valuepm/internal/service"
	"valuepm/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.Migrate(context.Background(), dbConn, log); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	rdb := rediscli.NewRedisClient(cfg.Redis)
	dashboardCache := cache.NewDashboardCache(rdb, time.Duration(cfg.Cache.DashboardTTLSeconds)*time.Second)

	producer, err := mq.NewProducer(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Producer initialization failed", zap.Error(err))
	}
	defer producer.Close()

	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	metricRepo := repository.NewMetricRepository(dbConn)
	measurementRepo := repository.NewMeasurementRepository(dbConn)
	stakeholderRepo := repository.NewStakeholderRepository(dbConn)
	deliverableRepo := repository.NewDeliverableRepository(dbConn)

	templateService := service.NewTemplateService()
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	projectService := service.NewProjectService(projectRepo, metricRepo, stakeholderRepo, deliverableRepo, templateService, producer, log)
	metricService := service.NewMetricService(metricRepo, producer, log)
	measurementService := service.NewMeasurementService(measurementRepo, metricRepo, producer, dashboardCache, log)
	stakeholderService := service.NewStakeholderService(stakeholderRepo, projectRepo, producer, log)
	deliverableService := service.NewDeliverableService(deliverableRepo, producer, log)
	dashboardService := service.NewDashboardService(projectRepo, metricRepo, measurementRepo, deliverableRepo, dashboardCache, log)

	authHandler := api.NewAuthHandler(authService)
	projectHandler := api.NewProjectHandler(projectService, dashboardService)
	metricHandler := api.NewMetricHandler(metricService)
	measurementHandler := api.NewMeasurementHandler(measurementService)
	stakeholderHandler := api.NewStakeholderHandler(stakeholderService)
	deliverableHandler := api.NewDeliverableHandler(deliverableService)

	router := api.NewRouter(
		authHandler,
		projectHandler,
		metricHandler,
		measurementHandler,
		stakeholderHandler,
		deliverableHandler,
		cfg.JWT.Secret,
	)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("Server start failed", zap.Error(err))
	}
}

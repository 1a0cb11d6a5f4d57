package main

import (
	"time"

	"go.uber.org/zap"

	"valuepm/config"
	"valuepm/internal/db"
	"valuepm/internal/mq"
	"valuepm/internal/mqhandler"
	rediscli "valuepm/internal/redis"
	"valuepm/internal/repository"
	"valuepm/internal/util"
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

	rdb := rediscli.NewRedisClient(cfg.Redis)
	deduper := util.NewDeduper(rdb, time.Hour)

	metricRepo := repository.NewMetricRepository(dbConn)
	auditRepo := repository.NewAuditLogRepository(dbConn)

	measurementHandler := mqhandler.NewMeasurementRecordedHandler(metricRepo, deduper, log)
	auditHandler := mqhandler.NewAuditEventHandler(auditRepo, deduper, log)

	measurementConsumer, err := mq.NewConsumer(cfg.MQ.URL, mq.RoutingKeyMeasurementRecorded, log)
	if err != nil {
		log.Fatal("Consumer initialization failed", zap.Error(err))
	}
	defer measurementConsumer.Close()
	measurementConsumer.SetHandler(measurementHandler.Handle)

	auditConsumer, err := mq.NewConsumer(cfg.MQ.URL, mq.RoutingKeyAuditEvent, log)
	if err != nil {
		log.Fatal("Consumer initialization failed", zap.Error(err))
	}
	defer auditConsumer.Close()
	auditConsumer.SetHandler(auditHandler.Handle)

	go func() {
		if err := measurementConsumer.StartConsuming(); err != nil {
			log.Fatal("measurement.recorded consumer failed", zap.Error(err))
		}
	}()
	go func() {
		if err := auditConsumer.StartConsuming(); err != nil {
			log.Fatal("audit.event consumer failed", zap.Error(err))
		}
	}()

	log.Info("Worker started",
		zap.String("queues", mq.RoutingKeyMeasurementRecorded+", "+mq.RoutingKeyAuditEvent),
	)
	select {}
}

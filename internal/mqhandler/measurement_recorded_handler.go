package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"valuepm/internal/mq"
	"valuepm/internal/repository"
	"valuepm/internal/util"
)

// MeasurementRecordedHandler re-derives a metric's current_value from its
// newest measurement. The API writes the incoming value synchronously, but
// that overwrite is wrong when measurements arrive out of order; this
// handler converges current_value on MAX(measured_at) regardless of the
// order events were published in.
type MeasurementRecordedHandler struct {
	metricRepo *repository.MetricRepository
	deduper    *util.Deduper
	logger     *zap.Logger
}

func NewMeasurementRecordedHandler(metricRepo *repository.MetricRepository, deduper *util.Deduper, logger *zap.Logger) *MeasurementRecordedHandler {
	return &MeasurementRecordedHandler{
		metricRepo: metricRepo,
		deduper:    deduper,
		logger:     logger,
	}
}

func (h *MeasurementRecordedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mq.MeasurementRecordedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal MeasurementRecordedPayload", zap.Error(err))
		return err
	}

	if !h.deduper.AcquireOnce(ctx, "measurement_recorded", p.MeasurementID) {
		h.logger.Info("Duplicate measurement.recorded event, skipping",
			zap.String("measurement_id", p.MeasurementID),
		)
		return nil
	}

	if err := h.metricRepo.RefreshCurrentValue(ctx, p.MetricID); err != nil {
		h.logger.Error("Failed to refresh current value",
			zap.String("metric_id", p.MetricID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Current value refreshed",
		zap.String("metric_id", p.MetricID),
		zap.String("measurement_id", p.MeasurementID),
	)
	return nil
}

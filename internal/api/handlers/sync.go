package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/internal/syncer"
	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

var validate = validator.New()

// SyncHandler triggers a sync run. Only one sync may run at a time;
// overlapping requests get a 409.
func SyncHandler(cfg *config.Config, s *syncer.Syncer) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Info("Sync request received", map[string]interface{}{"request_id": requestID})

		var req models.SyncRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind sync request", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Sync request validation failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if !s.TryBegin() {
			logger.Warn("Sync rejected, another sync is in progress", map[string]interface{}{
				"request_id": requestID,
			})
			return c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:     "sync_in_progress",
				Message:   "A sync is already running; try again later",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		summary, err := s.Run(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Sync run failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "sync_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		response := models.SyncResponse{
			Success:        true,
			Applications:   summary.Applications,
			Messages:       summary.Messages,
			Processed:      summary.Processed,
			Failed:         summary.Failed,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		}

		logger.Info("Sync request completed successfully", map[string]interface{}{
			"request_id":      requestID,
			"applications":    len(summary.Applications),
			"processed":       summary.Processed,
			"failed":          summary.Failed,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// SyncStatusHandler reports the busy state and last-run outcome
func SyncStatusHandler(s *syncer.Syncer) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.Status())
	}
}

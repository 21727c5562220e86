package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail/internal/config"
	"jobtrail/internal/exporter"
	"jobtrail/internal/extract"
	"jobtrail/internal/logging"
	"jobtrail/internal/store"
	"jobtrail/internal/tracker"
	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

var knownStatuses = []string{
	string(models.StatusPending),
	string(models.StatusViewed),
	string(models.StatusRejected),
	string(models.StatusInterviewRequested),
	string(models.StatusOffer),
}

func resolveUserID(c echo.Context, cfg *config.Config) string {
	if userID := c.QueryParam("user_id"); userID != "" {
		return userID
	}
	return cfg.Gmail.UserID
}

// ApplicationsHandler lists the saved applications for a user
func ApplicationsHandler(cfg *config.Config, st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		userID := resolveUserID(c, cfg)

		recs, err := st.Load(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "store_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		// Optional status filter
		if status := c.QueryParam("status"); status != "" {
			if !utils.Contains(knownStatuses, status) {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error:     "invalid_status",
					Message:   "unknown status filter: " + status,
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			filtered := recs[:0]
			for _, rec := range recs {
				if string(rec.Status) == status {
					filtered = append(filtered, rec)
				}
			}
			recs = filtered
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"applications": recs,
			"count":        len(recs),
		})
	}
}

// StatsHandler aggregates dashboard statistics over saved applications
func StatsHandler(cfg *config.Config, st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		userID := resolveUserID(c, cfg)

		recs, err := st.Load(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "store_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, tracker.BuildStats(recs))
	}
}

// ExportHandler streams the saved applications as a CSV download
func ExportHandler(cfg *config.Config, st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		userID := resolveUserID(c, cfg)

		recs, err := st.Load(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "store_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Exporting applications to CSV", map[string]interface{}{
			"request_id": requestID,
			"count":      len(recs),
		})

		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exporter.Filename(time.Now())+`"`)
		c.Response().WriteHeader(http.StatusOK)

		return exporter.WriteCSV(c.Response(), recs)
	}
}

// ClearCacheHandler drops all cached extraction results so the next
// sync reprocesses every email.
func ClearCacheHandler(ex *extract.Extractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		if err := ex.ClearCache(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "cache_clear_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "Extraction cache cleared",
		})
	}
}

// Package handler implements the HTTP surface of the data-entry form: login,
// reference data, remaining quotas, submission append, recent view, CSV
// export and the admin summary.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppm-service/internal/store"
	"ppm-service/internal/submission"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"
)

// Handler serves all endpoints against one Store. The store is injected so
// tests can swap in a fake and so the workbook/database choice stays in main.
type Handler struct {
	store store.Store
}

// New creates a Handler backed by the given store.
func New(st store.Store) *Handler {
	return &Handler{store: st}
}

// httpError maps the store/validation error taxonomy onto status codes and a
// JSON body, logging as it goes. Persist failures must never read as success.
func httpError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	var verr *submission.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("Submission rejected", zap.String("field", verr.Field), zap.String("reason", verr.Reason))
		prometheus.RecordError("validation_rejected")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Error()})
	case errors.Is(err, store.ErrPersist):
		log.Error("Persist failed", zap.Error(err))
		prometheus.RecordError("persist_failed")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not save data, your entry was NOT recorded"})
	case errors.Is(err, store.ErrSourceNotFound):
		log.Error("Data source missing", zap.Error(err))
		prometheus.RecordError("source_not_found")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "backing data file not found"})
	case errors.Is(err, store.ErrSheetMissing):
		log.Error("Mandatory sheet missing", zap.Error(err))
		prometheus.RecordError("sheet_missing")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mandatory reference sheet missing"})
	default:
		log.Error("Request failed", zap.Error(err))
		prometheus.RecordError("internal")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

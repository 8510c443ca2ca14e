package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppm-service/internal/quota"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"
)

// Summary returns per-project progress for the admin view: unclamped
// completed/total numbers with a clamped display ratio per category.
func (h *Handler) Summary(c echo.Context) error {
	log := logger.FromContext(c)

	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	rows := quota.Summarize(ds.Projects, ds.Submissions)
	log.Info("Summary computed", zap.Int("projects", len(rows)))

	return c.JSON(http.StatusOK, echo.Map{"projects": rows})
}

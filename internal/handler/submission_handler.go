package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppm-service/internal/export"
	"ppm-service/internal/model"
	"ppm-service/internal/submission"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"
)

// recentLimit caps the read-only recent-submissions view.
const recentLimit = 10

// SubmissionRequest carries one form submit. Counts are bounded by the form,
// but the server re-validates against live remaining quotas regardless.
type SubmissionRequest struct {
	Owner       string   `json:"owner" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Indoor      int      `json:"indoor" validate:"min=0"`
	VRF         int      `json:"vrf" validate:"min=0"`
	DX          int      `json:"dx" validate:"min=0"`
	AHU         int      `json:"ahu" validate:"min=0"`
	Technicians []string `json:"technicians" validate:"max=3"`
	Helpers     []string `json:"helpers" validate:"max=3"`
}

// CreateSubmission validates the request against the current remaining
// quotas, assembles the record and appends it to the log.
func (h *Handler) CreateSubmission(c echo.Context) error {
	log := logger.FromContext(c)

	var req SubmissionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse submission request", zap.Error(err))
		prometheus.RecordError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Submission request failed validation", zap.Error(err))
		prometheus.RecordError("validation_rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	loadStart := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(loadStart)
	if err != nil {
		return httpError(c, err)
	}

	record, err := submission.Build(ds.Projects, ds.Submissions, submission.Input{
		Owner: req.Owner,
		Name:  req.Name,
		Counts: model.UnitCounts{
			Indoor: req.Indoor,
			VRF:    req.VRF,
			DX:     req.DX,
			AHU:    req.AHU,
		},
		Technicians: req.Technicians,
		Helpers:     req.Helpers,
	}, time.Now())
	if err != nil {
		return httpError(c, err)
	}

	appendStart := time.Now()
	err = h.store.AppendSubmission(record)
	prometheus.TrackStoreOperation("append")(appendStart)
	if err != nil {
		return httpError(c, err)
	}

	prometheus.SubmissionCounter.Inc()
	log.Info("Submission saved",
		zap.String("owner", record.ProjectOwner),
		zap.String("name", record.ProjectName),
		zap.Int("indoor", record.IndoorCompleted),
		zap.Int("vrf", record.VRFCompleted),
		zap.Int("dx", record.DXCompleted),
		zap.Int("ahu", record.AHUCompleted))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Submission saved successfully",
		"submission": record,
	})
}

// RecentSubmissions returns the tail of the raw log for the read-only view
// under the form. No dedup here: two identical same-day entries are two real
// records and both stay visible.
func (h *Handler) RecentSubmissions(c echo.Context) error {
	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	subs := ds.Submissions
	if len(subs) > recentLimit {
		subs = subs[len(subs)-recentLimit:]
	}

	return c.JSON(http.StatusOK, echo.Map{
		"submissions": subs,
		"total":       len(ds.Submissions),
	})
}

// ListSubmissions returns the entire submission log for the admin table.
func (h *Handler) ListSubmissions(c echo.Context) error {
	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"submissions": ds.Submissions,
		"total":       len(ds.Submissions),
	})
}

// ExportSubmissions streams the deduplicated log as a CSV download.
func (h *Handler) ExportSubmissions(c echo.Context) error {
	log := logger.FromContext(c)

	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	data, err := export.CSV(ds.Submissions)
	if err != nil {
		return httpError(c, err)
	}

	prometheus.ExportCounter.Inc()
	log.Info("Submissions exported", zap.Int("rows", len(ds.Submissions)))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

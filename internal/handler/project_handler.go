package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppm-service/internal/quota"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"
)

// ListOwners returns the distinct project owners, sorted, for the first form
// selector.
func (h *Handler) ListOwners(c echo.Context) error {
	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	seen := make(map[string]struct{}, len(ds.Projects))
	owners := make([]string, 0, len(ds.Projects))
	for _, p := range ds.Projects {
		if _, ok := seen[p.Owner]; ok {
			continue
		}
		seen[p.Owner] = struct{}{}
		owners = append(owners, p.Owner)
	}
	sort.Strings(owners)

	return c.JSON(http.StatusOK, echo.Map{"owners": owners})
}

// ListProjects returns the projects of one owner (or all when no owner filter
// is given) for the dependent name selector.
func (h *Handler) ListProjects(c echo.Context) error {
	log := logger.FromContext(c)

	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	owner := c.QueryParam("owner")
	projects := ds.Projects
	if owner != "" {
		filtered := projects[:0:0]
		for _, p := range projects {
			if p.Owner == owner {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
		log.Debug("Filtered projects by owner",
			zap.String("owner", owner),
			zap.Int("count", len(projects)))
	}

	return c.JSON(http.StatusOK, projects)
}

// ListTechnicians returns the technician reference list for the team
// selectors.
func (h *Handler) ListTechnicians(c echo.Context) error {
	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	names := make([]string, 0, len(ds.Technicians))
	for _, t := range ds.Technicians {
		names = append(names, t.Name)
	}
	sort.Strings(names)

	return c.JSON(http.StatusOK, echo.Map{"technicians": names})
}

// Remaining recomputes the remaining quotas for one project from the current
// log. Recomputed on every call: each accepted submission changes the sums.
func (h *Handler) Remaining(c echo.Context) error {
	log := logger.FromContext(c)

	owner := c.QueryParam("owner")
	name := c.QueryParam("name")
	if owner == "" || name == "" {
		prometheus.RecordError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner and name query parameters are required"})
	}

	start := time.Now()
	ds, err := h.store.Load()
	prometheus.TrackStoreOperation("load")(start)
	if err != nil {
		return httpError(c, err)
	}

	emirate := ""
	if p := quota.FindProject(ds.Projects, owner, name); p != nil {
		emirate = p.Emirate
	}
	remaining := quota.Remaining(ds.Projects, ds.Submissions, owner, name)

	log.Debug("Remaining quotas computed",
		zap.String("owner", owner),
		zap.String("name", name),
		zap.Int("indoor", remaining.Indoor),
		zap.Int("vrf", remaining.VRF),
		zap.Int("dx", remaining.DX),
		zap.Int("ahu", remaining.AHU))

	return c.JSON(http.StatusOK, echo.Map{
		"owner":     owner,
		"name":      name,
		"emirate":   emirate,
		"remaining": remaining,
	})
}

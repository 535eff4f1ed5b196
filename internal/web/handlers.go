package web

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
	"github.com/rocklandwatch/firewatch-tracker/internal/feed"
)

const dateLayout = "2006-01-02"

// handleListIncidents serves the stored incidents newest first, paginated and
// optionally narrowed by type and reported date.
//
//	GET /api/incidents?page=2&types=fire,ems&start=2024-05-01&end=2024-05-31
func (s *Server) handleListIncidents(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		page = val
	}

	types := parseTypes(c.Query("types"))

	start, end, err := s.parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := s.store.Load()
	if err != nil {
		s.logger.Error("loading store", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load incidents"})
		return
	}

	filtered := s.filter(incidents, types, start, end)

	pageSize := s.cfg.PageSize
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	c.JSON(http.StatusOK, gin.H{
		"data": filtered[lo:hi],
		"meta": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// handleListTypes serves the distinct incident types present in the store,
// sorted, for populating filter dropdowns.
func (s *Server) handleListTypes(c *gin.Context) {
	incidents, err := s.store.Load()
	if err != nil {
		s.logger.Error("loading store", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load incidents"})
		return
	}

	seen := make(map[string]bool)
	types := make([]string, 0)
	for _, inc := range incidents {
		key := strings.ToLower(inc.IncidentType)
		if seen[key] {
			continue
		}
		seen[key] = true
		types = append(types, inc.IncidentType)
	}
	sort.Strings(types)

	c.JSON(http.StatusOK, gin.H{
		"data": types,
		"meta": gin.H{"count": len(types)},
	})
}

func (s *Server) handleDownloadCSV(c *gin.Context) {
	s.download(c, s.cfg.CSVPath)
}

func (s *Server) handleDownloadJSON(c *gin.Context) {
	s.download(c, s.cfg.JSONPath)
}

// download serves a persisted file as an attachment. The files do not exist
// until the first successful run writes them.
func (s *Server) download(c *gin.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no incident data yet"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// handleFetch triggers a fetch-and-reconcile run and returns its report.
// Concurrent calls are serialized by the runner.
func (s *Server) handleFetch(c *gin.Context) {
	report, err := s.runner.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("on-demand run failed", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, feed.ErrFetch) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// parseTypes splits a comma-separated types filter into a lowercase set.
// A nil set means no type filtering.
func parseTypes(raw string) map[string]bool {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			set[strings.ToLower(t)] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// parseDateRange interprets start and end as inclusive dates in the
// configured timezone. The returned end bound is exclusive, the start of the
// following day.
func (s *Server) parseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startStr != "" {
		t, err := time.ParseInLocation(dateLayout, startStr, s.cfg.Location)
		if err != nil {
			return nil, nil, errors.New("invalid start date, want YYYY-MM-DD")
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.ParseInLocation(dateLayout, endStr, s.cfg.Location)
		if err != nil {
			return nil, nil, errors.New("invalid end date, want YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	return start, end, nil
}

// filter narrows the stored set without disturbing its order. Records whose
// timestamp does not parse are excluded only when a date bound is active.
func (s *Server) filter(incidents []domain.Incident, types map[string]bool, start, end *time.Time) []domain.Incident {
	filtered := make([]domain.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if types != nil && !types[strings.ToLower(inc.IncidentType)] {
			continue
		}
		if start != nil || end != nil {
			ts, err := domain.ParseReportedTime(inc.TimeReported, s.cfg.Location)
			if err != nil {
				continue
			}
			if start != nil && ts.Before(*start) {
				continue
			}
			if end != nil && !ts.Before(*end) {
				continue
			}
		}
		filtered = append(filtered, inc)
	}
	return filtered
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nemt/internal/domain"
	"nemt/internal/service"
)

// ConflictHandler handles HTTP requests for scheduling conflicts.
type ConflictHandler struct {
	conflictService *service.ConflictService
	location        *time.Location
}

// NewConflictHandler creates a new ConflictHandler. Bare dates in requests are
// read in location.
func NewConflictHandler(conflictService *service.ConflictService, location *time.Location) *ConflictHandler {
	if location == nil {
		location = time.UTC
	}
	return &ConflictHandler{
		conflictService: conflictService,
		location:        location,
	}
}

// DateRangeResponse is the scanned window in a conflict report.
type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ConflictReportResponse is the HTTP response for a conflict scan.
type ConflictReportResponse struct {
	Conflicts []domain.Conflict    `json:"conflicts"`
	Stats     domain.ConflictStats `json:"stats"`
	DateRange DateRangeResponse    `json:"date_range"`
}

// GetConflicts handles GET /v1/scheduling/conflicts
func (h *ConflictHandler) GetConflicts(c *gin.Context) {
	start, err := parseTimeParam(queryParam(c, "start_date", "startDate"), h.location, false)
	if err != nil {
		respondError(c, service.ErrInvalidDateRange)
		return
	}
	end, err := parseTimeParam(queryParam(c, "end_date", "endDate"), h.location, true)
	if err != nil {
		respondError(c, service.ErrInvalidDateRange)
		return
	}

	report, err := h.conflictService.DetectConflicts(c.Request.Context(), service.DetectConflictsRequest{
		Start:    start,
		End:      end,
		DriverID: queryParam(c, "driver_id", "driverId"),
		Actor:    requestActor(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ConflictReportResponse{
		Conflicts: report.Conflicts,
		Stats:     report.Stats,
		DateRange: DateRangeResponse{
			Start: report.DateRange.Start.Format(time.RFC3339),
			End:   report.DateRange.End.Format(time.RFC3339),
		},
	})
}

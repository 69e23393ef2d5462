package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nemt/internal/domain"
	"nemt/internal/service"
)

// AuditHandler handles HTTP requests for the audit trail.
type AuditHandler struct {
	auditLogger *service.AuditLogger
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditLogger *service.AuditLogger) *AuditHandler {
	return &AuditHandler{auditLogger: auditLogger}
}

// AuditEntryResponse is a single audit entry.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Subject   string         `json:"subject"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// GetRecent handles GET /v1/audit
func (h *AuditHandler) GetRecent(c *gin.Context) {
	limit := 50
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			respondError(c, service.ErrInvalidLimit)
			return
		}
		limit = parsed
	}

	entries, err := h.auditLogger.Recent(c.Request.Context(), domain.AuditAction(c.Query("action")), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, AuditEntryResponse{
			ID:        entry.ID,
			Action:    string(entry.Action),
			Actor:     entry.Actor,
			Subject:   entry.Subject,
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		})
	}

	respondJSON(c, http.StatusOK, response)
}

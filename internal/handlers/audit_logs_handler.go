package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-citas/internal/audit"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs  *audit.Logger
	clock *timezone.Clock
}

func NewAuditLogsHandler(logs *audit.Logger, clock *timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional date range, whole days in the business zone
	// --------------------------------------------------

	loc := h.clock.Location()

	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(loc, raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		f.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(loc, raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}

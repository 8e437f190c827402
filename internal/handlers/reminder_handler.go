package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/reminder"
	"github.com/BruksfildServices01/agenda-citas/internal/timezone"
)

type ReminderHandler struct {
	scanner *reminder.Scanner
	clock   *timezone.Clock
}

func NewReminderHandler(scanner *reminder.Scanner, clock *timezone.Clock) *ReminderHandler {
	return &ReminderHandler{scanner: scanner, clock: clock}
}

// List shows the currently active reminders, soonest first.
func (h *ReminderHandler) List(c *gin.Context) {
	out, err := h.scanner.ListActive(c.Request.Context(), h.clock.Now())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

// Dismiss hides a reminder until the next process restart. It is never
// re-promoted because the appointment is already marked as reminded.
func (h *ReminderHandler) Dismiss(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.scanner.Dismiss(id)
	httpresp.NoContent(c)
}

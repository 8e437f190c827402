package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/middleware"
	"github.com/BruksfildServices01/agenda-citas/internal/usecase/workinghours"
)

type WorkingHoursHandler struct {
	manager *workinghours.Manager
}

func NewWorkingHoursHandler(manager *workinghours.Manager) *WorkingHoursHandler {
	return &WorkingHoursHandler{manager: manager}
}

type AddIntervalRequest struct {
	Weekday   int    `json:"weekday" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time" binding:"required"`   // HH:MM
}

func (h *WorkingHoursHandler) List(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	intervals, err := h.manager.List(c.Request.Context(), employeeID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, intervals)
}

func (h *WorkingHoursHandler) Add(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	wi, err := h.manager.Add(c.Request.Context(), workinghours.AddIntervalInput{
		EmployeeID: employeeID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Principal:  middleware.Principal(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, wi)
}

// Clear deactivates every interval of the employee.
func (h *WorkingHoursHandler) Clear(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	n, err := h.manager.Clear(c.Request.Context(), employeeID, middleware.Principal(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deactivated": n})
}

func (h *WorkingHoursHandler) Remove(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.manager.Remove(c.Request.Context(), id, middleware.Principal(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-citas/internal/dto"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/middleware"
	"github.com/BruksfildServices01/agenda-citas/internal/timezone"
	ucappointment "github.com/BruksfildServices01/agenda-citas/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucappointment.CreateAppointment
	setStatus    *ucappointment.SetStatus
	reschedule   *ucappointment.Reschedule
	remove       *ucappointment.DeleteAppointment
	list         *ucappointment.ListAppointments
	availability *ucappointment.GetAvailability
	clock        *timezone.Clock
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	setStatus *ucappointment.SetStatus,
	reschedule *ucappointment.Reschedule,
	remove *ucappointment.DeleteAppointment,
	list *ucappointment.ListAppointments,
	availability *ucappointment.GetAvailability,
	clock *timezone.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		setStatus:    setStatus,
		reschedule:   reschedule,
		remove:       remove,
		list:         list,
		availability: availability,
		clock:        clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientDocument string `json:"client_document" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	EmployeeID     uint   `json:"employee_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:MM
	Status         string `json:"status"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start, err := parseDateTime(h.clock.Location(), req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		ClientName:     req.ClientName,
		ClientDocument: req.ClientDocument,
		ClientPhone:    normalizePhone(req.ClientPhone),
		EmployeeID:     req.EmployeeID,
		ServiceID:      req.ServiceID,
		StartTime:      start,
		Status:         req.Status,
		Principal:      middleware.Principal(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

// ======================================================
// LIST (employee + date | employee + month)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	employeeID, ok := parseIDQuery(c, "employee_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	loc := h.clock.Location()

	if month := c.Query("month"); month != "" {
		year, m, err := parseMonth(loc, month)
		if err != nil {
			httperr.FromError(c, err)
			return
		}

		out, err := h.list.ByMonth(ctx, employeeID, year, m, loc)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, out)
		return
	}

	date := h.clock.Now()
	if raw := c.Query("date"); raw != "" {
		var err error
		if date, err = parseDate(loc, raw); err != nil {
			httperr.FromError(c, err)
			return
		}
	}

	out, err := h.list.ByDate(ctx, employeeID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// STATUS / START / DELETE
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), id, req.Status, middleware.Principal(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start, err := parseDateTime(h.clock.Location(), req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), id, start, middleware.Principal(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, middleware.Principal(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// AVAILABILITY (coarse)
// ======================================================

func (h *AppointmentHandler) HasAvailability(c *gin.Context) {
	employeeID, ok := parseIDQuery(c, "employee_id")
	if !ok {
		return
	}

	date, err := parseDate(h.clock.Location(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	available, err := h.availability.HasAny(c.Request.Context(), employeeID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"employee_id": employeeID,
		"date":        date.Format(dateLayout),
		"available":   available,
	})
}

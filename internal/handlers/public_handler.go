package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/dto"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/timezone"
	ucappointment "github.com/BruksfildServices01/agenda-citas/internal/usecase/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves unauthenticated clients: availability, booking and
// self-service by document + phone.
type PublicHandler struct {
	create       *ucappointment.CreateAppointment
	clients      *ucappointment.ClientAppointments
	availability *ucappointment.GetAvailability
	clock        *timezone.Clock
}

func NewPublicHandler(
	create *ucappointment.CreateAppointment,
	clients *ucappointment.ClientAppointments,
	availability *ucappointment.GetAvailability,
	clock *timezone.Clock,
) *PublicHandler {
	return &PublicHandler{
		create:       create,
		clients:      clients,
		availability: availability,
		clock:        clock,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientDocument string `json:"client_document" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	EmployeeID     uint   `json:"employee_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:MM
}

type ClientIdentityRequest struct {
	Document string `json:"document" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

func (r ClientIdentityRequest) identity() ucappointment.ClientIdentity {
	return ucappointment.ClientIdentity{Document: r.Document, Phone: normalizePhone(r.Phone)}
}

func normalizePhone(phone string) string {
	return validators.NormalizePhone(phone)
}

func validateIdentity(c *gin.Context, document, phone string) bool {
	if !validators.IsDocumentValid(document) {
		httperr.BadRequest(c, "invalid_document", "Document must be 4 to 20 letters or digits.")
		return false
	}
	if !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone must have 7 to 15 digits.")
		return false
	}
	return true
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	employeeID, ok := parseIDQuery(c, "employee_id")
	if !ok {
		return
	}
	serviceID, ok := parseIDQuery(c, "service_id")
	if !ok {
		return
	}

	date, err := parseDate(h.clock.Location(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date.Format(dateLayout),
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !validateIdentity(c, req.ClientDocument, req.ClientPhone) {
		return
	}

	start, err := parseDateTime(h.clock.Location(), req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if !start.After(h.clock.Now()) {
		httperr.BadRequest(c, "start_in_past", "Appointments must start in the future.")
		return
	}

	identity := ucappointment.ClientIdentity{Document: req.ClientDocument, Phone: normalizePhone(req.ClientPhone)}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		ClientName:     req.ClientName,
		ClientDocument: identity.Document,
		ClientPhone:    identity.Phone,
		EmployeeID:     req.EmployeeID,
		ServiceID:      req.ServiceID,
		StartTime:      start,
		Principal:      identity.Principal(),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

////////////////////////////////////////////////////////
// SELF-SERVICE
////////////////////////////////////////////////////////

func (h *PublicHandler) Lookup(c *gin.Context) {
	var req ClientIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	out, err := h.clients.List(c.Request.Context(), req.identity())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) Exists(c *gin.Context) {
	var req ClientIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exists, err := h.clients.Exists(c.Request.Context(), req.identity())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"exists": exists})
}

func (h *PublicHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ClientIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.clients.Cancel(c.Request.Context(), id, req.identity())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// CatalogForgetter drops cached catalog entries after an edit.
type CatalogForgetter interface {
	ForgetEmployee(id uint)
	ForgetService(id uint)
}

type CatalogHandler struct {
	db      *gorm.DB
	catalog CatalogForgetter
}

func NewCatalogHandler(db *gorm.DB, catalog CatalogForgetter) *CatalogHandler {
	return &CatalogHandler{db: db, catalog: catalog}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,min=1"`
	Cost            decimal.Decimal `json:"cost"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

// --------- Employees ---------

// ListEmployees returns active employees; ?all=true includes inactive ones.
func (h *CatalogHandler) ListEmployees(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Could not list employees.")
		return
	}

	httpresp.List(c, employees)
}

func (h *CatalogHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	emp := models.Employee{Name: strings.TrimSpace(req.Name), Active: true}
	if emp.Name == "" {
		httperr.BadRequest(c, "name_required", "Employee name is required.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Could not create employee.")
		return
	}

	httpresp.Created(c, emp)
}

// DeactivateEmployee hides the employee from the public catalog. Existing
// appointments are kept.
func (h *CatalogHandler) DeactivateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_employee", "Could not deactivate employee.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "employee_not_found", "Employee does not exist.")
		return
	}

	h.catalog.ForgetEmployee(id)
	httpresp.NoContent(c)
}

// --------- Services ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.Cost.IsNegative() {
		httperr.BadRequest(c, "invalid_cost", "Cost cannot be negative.")
		return
	}

	svc := models.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Cost:            req.Cost,
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	httpresp.Created(c, svc)
}

// UpdateService edits a service. Booked appointments keep the cost and end
// time they were created with.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var svc models.Service
	if err := db.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service does not exist.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
			return
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			httperr.BadRequest(c, "invalid_cost", "Cost cannot be negative.")
			return
		}
		svc.Cost = *req.Cost
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	h.catalog.ForgetService(id)
	httpresp.OK(c, svc)
}

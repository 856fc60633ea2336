package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// CatalogHandler administra o cadastro: serviços, profissionais e
// expediente. CRUD direto, sem regra de agendamento envolvida.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ======================================================
// SERVIÇOS
// ======================================================

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	BufferMin   int     `json:"buffer_min"`
	Price       float64 `json:"price" binding:"required"`

	CancellationPolicy string `json:"cancellation_policy"`
	MaxAdvanceDays     int    `json:"max_advance_days"`

	RequiresDeposit bool    `json:"requires_deposit"`
	DepositAmount   float64 `json:"deposit_amount"`
}

type UpdateServiceRequest struct {
	Name               *string  `json:"name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	DurationMin        *int     `json:"duration_min,omitempty"`
	BufferMin          *int     `json:"buffer_min,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	CancellationPolicy *string  `json:"cancellation_policy,omitempty"`
	MaxAdvanceDays     *int     `json:"max_advance_days,omitempty"`
	RequiresDeposit    *bool    `json:"requires_deposit,omitempty"`
	DepositAmount      *float64 `json:"deposit_amount,omitempty"`
	Active             *bool    `json:"active,omitempty"`
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	policy := strings.ToLower(strings.TrimSpace(req.CancellationPolicy))
	if policy == "" {
		policy = "flexible"
	}
	switch policy {
	case "flexible", "moderate", "strict", "very_strict":
	default:
		httperr.BadRequest(c, "invalid_request", "Política de cancelamento inválida.")
		return
	}

	service := models.Service{
		Name:               req.Name,
		Description:        req.Description,
		Category:           strings.ToLower(req.Category),
		DurationMin:        req.DurationMin,
		BufferMin:          req.BufferMin,
		Price:              req.Price,
		CancellationPolicy: policy,
		MaxAdvanceDays:     req.MaxAdvanceDays,
		RequiresDeposit:    req.RequiresDeposit,
		DepositAmount:      req.DepositAmount,
		Active:             true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		First(&service, "id = ?", c.Param("id")).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.BufferMin != nil {
		service.BufferMin = *req.BufferMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.CancellationPolicy != nil {
		service.CancellationPolicy = strings.ToLower(*req.CancellationPolicy)
	}
	if req.MaxAdvanceDays != nil {
		service.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.RequiresDeposit != nil {
		service.RequiresDeposit = *req.RequiresDeposit
	}
	if req.DepositAmount != nil {
		service.DepositAmount = *req.DepositAmount
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// ======================================================
// PROFISSIONAIS
// ======================================================

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`

	ServiceIDs []uint `json:"service_ids"`
}

func (h *CatalogHandler) ListStaff(c *gin.Context) {
	var staff []models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		Order("id ASC").
		Find(&staff).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, staff)
}

func (h *CatalogHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	staff := models.Staff{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		Timezone: req.Timezone,
		Active:   true,
	}

	if len(req.ServiceIDs) > 0 {
		var services []models.Service
		if err := h.db.Find(&services, req.ServiceIDs).Error; err != nil {
			httperr.Internal(c, "failed_to_create_staff", "Erro ao vincular serviços.")
			return
		}
		staff.Services = services
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Erro ao criar profissional.")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// AssignServices substitui os serviços que o profissional realiza.
func (h *CatalogHandler) AssignServices(c *gin.Context) {
	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		First(&staff, "id = ?", c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req struct {
		ServiceIDs []uint `json:"service_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var services []models.Service
	if len(req.ServiceIDs) > 0 {
		if err := h.db.Find(&services, req.ServiceIDs).Error; err != nil {
			httperr.Internal(c, "failed_to_update_staff", "Erro ao vincular serviços.")
			return
		}
	}

	if err := h.db.Model(&staff).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Erro ao vincular serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// EXPEDIENTE
// ======================================================

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *CatalogHandler) GetWorkingHours(c *gin.Context) {
	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("staff_id = ?", c.Param("id")).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// UpdateWorkingHours substitui o expediente completo do profissional.
func (h *CatalogHandler) UpdateWorkingHours(c *gin.Context) {
	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		First(&staff, "id = ?", c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.db.Where("staff_id = ?", staff.ID).
		Delete(&models.WorkingHours{}).Error; err != nil {
		httperr.Internal(c, "failed_to_clear_existing_hours", "Erro ao limpar expediente.")
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		toCreate = append(toCreate, models.WorkingHours{
			StaffID:    staff.ID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// CLIENTES
// ======================================================

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, customers)
}

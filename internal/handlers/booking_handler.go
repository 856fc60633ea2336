package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/httpresp"
	"github.com/BruksfildServices01/agenda-core/internal/models"
	usecase "github.com/BruksfildServices01/agenda-core/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo       domain.Repository
	create     *usecase.CreateBooking
	cancel     *usecase.CancelBooking
	reschedule *usecase.RescheduleBooking
	finish     *usecase.FinishBooking
	list       *usecase.ListBookings
	cfg        *config.Config
}

func NewBookingHandler(
	repo domain.Repository,
	create *usecase.CreateBooking,
	cancel *usecase.CancelBooking,
	reschedule *usecase.RescheduleBooking,
	finish *usecase.FinishBooking,
	list *usecase.ListBookings,
	cfg *config.Config,
) *BookingHandler {
	return &BookingHandler{
		repo:       repo,
		create:     create,
		cancel:     cancel,
		reschedule: reschedule,
		finish:     finish,
		list:       list,
		cfg:        cfg,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	// Ou customer_id, ou o trio nome/telefone (cadastro na hora).
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	ServiceID uint `json:"service_id" binding:"required"`
	StaffID   uint `json:"staff_id"` // 0 = qualquer profissional

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	Notes         string  `json:"notes"`
	DepositAmount float64 `json:"deposit_amount"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type RescheduleBookingRequest struct {
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	StaffID uint   `json:"staff_id"` // 0 = manter
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	settings := h.cfg.Booking()

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(settings.Timezone, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	customerID := req.CustomerID
	if customerID == 0 {
		if req.CustomerName == "" || req.CustomerPhone == "" {
			httperr.BadRequest(c, "invalid_request", "Informe o cliente ou nome e telefone.")
			return
		}
		customer, err := h.repo.GetOrCreateCustomer(
			c.Request.Context(),
			req.CustomerName,
			req.CustomerPhone,
			req.CustomerEmail,
		)
		if err != nil {
			httperr.Internal(c, "failed_to_create_customer", "Erro ao cadastrar cliente.")
			return
		}
		customerID = customer.ID
	}

	ap, waitlisted, err := h.create.Execute(c.Request.Context(), domain.BookingRequest{
		CustomerID:    customerID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		StartTime:     start,
		Notes:         req.Notes,
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		if domain.IsSlotConflict(err) && waitlisted != nil {
			c.JSON(409, gin.H{
				"error_code": "slot_unavailable",
				"message":    "Horário indisponível. Você entrou na lista de espera.",
				"waitlist":   waitlisted,
			})
			return
		}
		respondError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	ap, err := h.list.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// List aceita ?date=YYYY-MM-DD (um dia) ou ?from/?to, e ?staff_id.
func (h *BookingHandler) List(c *gin.Context) {
	settings := h.cfg.Booking()

	var start, end time.Time
	var err error

	if date := c.Query("date"); date != "" {
		start, err = parseDate(settings.Timezone, date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
			return
		}
		end = start.AddDate(0, 0, 1)
	} else {
		start, err = parseDate(settings.Timezone, c.Query("from"))
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
			return
		}
		end, err = parseDate(settings.Timezone, c.Query("to"))
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
			return
		}
		end = end.AddDate(0, 0, 1)
	}

	var staffID *uint
	if raw := c.Query("staff_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "staff_id inválido.")
			return
		}
		v := uint(id)
		staffID = &v
	}

	appointments, err := h.list.Execute(c.Request.Context(), start, end, staffID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List[models.Appointment](c, appointments)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	c.ShouldBindJSON(&req) // reason é opcional

	role, _ := c.Get("userRole")
	override := role == "owner" || role == "admin"

	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), req.Reason, override)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	settings := h.cfg.Booking()

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	newStart, err := parseDateTime(settings.Timezone, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), c.Param("id"), newStart, req.StaffID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	ap, err := h.finish.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	ap, err := h.finish.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	ap, err := h.finish.NoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

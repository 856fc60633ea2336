package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/httpresp"
	usecase "github.com/BruksfildServices01/agenda-core/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type RecurringHandler struct {
	series *usecase.CreateRecurringSeries
	cfg    *config.Config
}

func NewRecurringHandler(series *usecase.CreateRecurringSeries, cfg *config.Config) *RecurringHandler {
	return &RecurringHandler{series: series, cfg: cfg}
}

// ======================================================
// REQUEST
// ======================================================

type CreateSeriesRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	ServiceID  uint `json:"service_id" binding:"required"`
	StaffID    uint `json:"staff_id" binding:"required"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	// daily | weekly | monthly
	Frequency string `json:"frequency" binding:"required"`
	Interval  int    `json:"interval"`

	Weekdays       []int  `json:"weekdays"`
	DayOfMonth     int    `json:"day_of_month"`
	EndDate        string `json:"end_date"`
	MaxOccurrences int    `json:"max_occurrences"`

	Notes string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *RecurringHandler) Create(c *gin.Context) {
	settings := h.cfg.Booking()

	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	firstStart, err := parseDateTime(settings.Timezone, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		d, err := parseDate(settings.Timezone, req.EndDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data final inválida.")
			return
		}
		// inclusivo: ocorrências até o fim do dia informado
		d = d.AddDate(0, 0, 1).Add(-time.Minute)
		endDate = &d
	}

	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, d := range req.Weekdays {
		if d < 0 || d > 6 {
			httperr.BadRequest(c, "invalid_recurrence", "Dia da semana inválido.")
			return
		}
		weekdays = append(weekdays, time.Weekday(d))
	}

	result, err := h.series.Execute(c.Request.Context(), usecase.SeriesInput{
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		FirstStart: firstStart,
		Notes:      req.Notes,
		Pattern: domain.RecurrencePattern{
			Frequency:      domain.Frequency(req.Frequency),
			Interval:       req.Interval,
			Weekdays:       weekdays,
			DayOfMonth:     req.DayOfMonth,
			EndDate:        endDate,
			MaxOccurrences: req.MaxOccurrences,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, result)
}

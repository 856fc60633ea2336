package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-core/internal/availability"
	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	repo  domain.Repository
	avail *availability.Manager
	cfg   *config.Config
}

func NewAvailabilityHandler(
	repo domain.Repository,
	avail *availability.Manager,
	cfg *config.Config,
) *AvailabilityHandler {
	return &AvailabilityHandler{repo: repo, avail: avail, cfg: cfg}
}

// ======================================================
// SLOTS
// ======================================================

// Slots: GET /availability?staff_id=&service_id=&date=YYYY-MM-DD
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	settings := h.cfg.Booking()

	staffID, err := queryUint(c, "staff_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "staff_id inválido.")
		return
	}
	serviceID, err := queryUint(c, "service_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "service_id inválido.")
		return
	}

	date, err := parseDate(settings.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), serviceID)
	if err != nil || !svc.Active {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	slots, err := h.avail.GetAvailableSlots(c.Request.Context(), staffID, date, svc)
	if err != nil {
		httperr.Internal(c, "availability_error", "Erro ao calcular disponibilidade.")
		return
	}

	httpresp.OK(c, gin.H{
		"staff_id":   staffID,
		"service_id": serviceID,
		"date":       date.Format("2006-01-02"),
		"slots":      slots,
	})
}

// ======================================================
// CHECK
// ======================================================

// Check: GET /availability/check?staff_id=&service_id=&date=&time=
func (h *AvailabilityHandler) Check(c *gin.Context) {
	settings := h.cfg.Booking()

	staffID, err := queryUint(c, "staff_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "staff_id inválido.")
		return
	}
	serviceID, err := queryUint(c, "service_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "service_id inválido.")
		return
	}

	start, err := parseDateTime(settings.Timezone, c.Query("date"), c.Query("time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), serviceID)
	if err != nil || !svc.Active {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	free, err := h.avail.IsAvailable(c.Request.Context(), staffID, start, svc, "")
	if err != nil {
		httperr.Internal(c, "availability_error", "Erro ao checar disponibilidade.")
		return
	}

	httpresp.OK(c, gin.H{"available": free})
}

func queryUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(v), err
}

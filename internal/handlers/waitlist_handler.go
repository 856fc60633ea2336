package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/httpresp"
	"github.com/BruksfildServices01/agenda-core/internal/models"
	usecase "github.com/BruksfildServices01/agenda-core/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type WaitlistHandler struct {
	waitlist *usecase.WaitlistManager
}

func NewWaitlistHandler(waitlist *usecase.WaitlistManager) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

// List: GET /waitlist?status=pending
func (h *WaitlistHandler) List(c *gin.Context) {
	entries, err := h.waitlist.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.Internal(c, "waitlist_error", "Erro ao listar a fila de espera.")
		return
	}
	httpresp.List[models.WaitlistEntry](c, entries)
}

// Promote dispara a varredura manualmente (fora do cron).
func (h *WaitlistHandler) Promote(c *gin.Context) {
	promoted, err := h.waitlist.PromotePending(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "waitlist_error", "Erro ao promover a fila de espera.")
		return
	}
	httpresp.OK(c, gin.H{"promoted": promoted})
}

func (h *WaitlistHandler) MarkBooked(c *gin.Context) {
	entry, err := h.waitlist.MarkBooked(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

func (h *WaitlistHandler) Cancel(c *gin.Context) {
	entry, err := h.waitlist.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-core/internal/config"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/httpresp"
	usecase "github.com/BruksfildServices01/agenda-core/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AnalyticsHandler struct {
	analytics *usecase.BookingAnalytics
	cfg       *config.Config
}

func NewAnalyticsHandler(analytics *usecase.BookingAnalytics, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, cfg: cfg}
}

// Report: GET /analytics?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AnalyticsHandler) Report(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.analytics.Execute(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, report)
}

// Export: POST /analytics/export?from=&to= → publica o CSV no bucket.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	from, to, ok := h.period(c)
	if !ok {
		return
	}

	location, err := h.analytics.Export(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"location": location})
}

func (h *AnalyticsHandler) period(c *gin.Context) (from, to time.Time, ok bool) {
	settings := h.cfg.Booking()

	var err error
	from, err = parseDate(settings.Timezone, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inicial inválida.")
		return from, to, false
	}

	to, err = parseDate(settings.Timezone, c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data final inválida.")
		return from, to, false
	}
	to = to.AddDate(0, 0, 1)

	return from, to, true
}

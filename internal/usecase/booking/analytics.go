package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// ANALYTICS
// ======================================================

// Exporter envia o relatório bruto para fora (S3, disco...).
type Exporter interface {
	Export(
		ctx context.Context,
		name string,
		appointments []models.Appointment,
	) (string, error)
}

type BookingAnalytics struct {
	repo     domain.Repository
	exporter Exporter // opcional
}

func NewBookingAnalytics(repo domain.Repository, exporter Exporter) *BookingAnalytics {
	return &BookingAnalytics{repo: repo, exporter: exporter}
}

// ======================================================
// REPORT
// ======================================================

type StaffSummary struct {
	StaffID     uint    `json:"staff_id"`
	StaffName   string  `json:"staff_name"`
	Total       int     `json:"total"`
	Completed   int     `json:"completed"`
	Revenue     float64 `json:"revenue"`
	BookedHours float64 `json:"booked_hours"`
}

type Report struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`

	// Receita realizada: somente agendamentos concluídos.
	Revenue float64 `json:"revenue"`

	// Faltas sobre o total de agendamentos encerrados.
	NoShowRate float64 `json:"no_show_rate"`

	// Cancelamentos sobre tudo que deixou de ser pending/confirmed.
	CancellationRate float64 `json:"cancellation_rate"`

	ByStaff []StaffSummary `json:"by_staff"`
}

func (uc *BookingAnalytics) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*Report, error) {

	if !to.After(from) {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	appointments, err := uc.repo.ListAppointments(ctx, from, to, nil)
	if err != nil {
		return nil, err
	}

	report := &Report{
		From:     from,
		To:       to,
		Total:    len(appointments),
		ByStatus: map[string]int{},
	}

	staff := map[uint]*StaffSummary{}
	var order []uint
	finished := 0

	for i := range appointments {
		ap := &appointments[i]
		report.ByStatus[ap.Status]++

		sum, ok := staff[ap.StaffID]
		if !ok {
			sum = &StaffSummary{StaffID: ap.StaffID, StaffName: ap.Staff.Name}
			staff[ap.StaffID] = sum
			order = append(order, ap.StaffID)
		}
		sum.Total++

		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			report.Revenue += ap.Price
			sum.Completed++
			sum.Revenue += ap.Price
			sum.BookedHours += ap.EndTime.Sub(ap.StartTime).Hours()
			finished++
		case domain.StatusNoShow, domain.StatusCancelled:
			finished++
		}
	}

	if finished > 0 {
		report.NoShowRate = float64(report.ByStatus[string(domain.StatusNoShow)]) / float64(finished)
		report.CancellationRate = float64(report.ByStatus[string(domain.StatusCancelled)]) / float64(finished)
	}

	for _, id := range order {
		report.ByStaff = append(report.ByStaff, *staff[id])
	}

	return report, nil
}

// ======================================================
// EXPORT
// ======================================================

// Export materializa o período em CSV e publica via exporter.
// Retorna a localização do artefato gerado.
func (uc *BookingAnalytics) Export(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (string, error) {

	if uc.exporter == nil {
		return "", httperr.ErrBusiness("export_not_configured")
	}
	if !to.After(from) {
		return "", httperr.ErrBusiness("invalid_request")
	}

	appointments, err := uc.repo.ListAppointments(ctx, from, to, nil)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf(
		"appointments_%s_%s.csv",
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)

	return uc.exporter.Export(ctx, name, appointments)
}

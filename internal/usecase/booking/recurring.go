package booking

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// CreateRecurringSeries expande um padrão de recorrência em reservas
// individuais. Cada ocorrência passa pelo mesmo pipeline de criação;
// as que caem em conflito ou violam política são puladas, nunca
// abortam a série inteira.
type CreateRecurringSeries struct {
	repo   domain.Repository
	create *CreateBooking
	cfg    *config.Config
}

func NewCreateRecurringSeries(
	repo domain.Repository,
	create *CreateBooking,
	cfg *config.Config,
) *CreateRecurringSeries {
	return &CreateRecurringSeries{
		repo:   repo,
		create: create,
		cfg:    cfg,
	}
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SeriesInput struct {
	CustomerID uint
	ServiceID  uint
	StaffID    uint
	FirstStart time.Time
	Notes      string

	Pattern domain.RecurrencePattern
}

// OccurrenceOutcome registra o destino de cada ocorrência expandida.
type OccurrenceOutcome struct {
	Start       time.Time           `json:"start"`
	Status      string              `json:"status"` // created | skipped_conflict | skipped_policy
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

type SeriesResult struct {
	Series   *models.RecurringSeries `json:"series"`
	Outcomes []OccurrenceOutcome     `json:"outcomes"`
	Created  int                     `json:"created"`
	Skipped  int                     `json:"skipped"`
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateRecurringSeries) Execute(
	ctx context.Context,
	in SeriesInput,
) (*SeriesResult, error) {

	// --------------------------------------------------
	// 1️⃣ Validação do padrão
	// --------------------------------------------------
	if err := in.Pattern.Validate(); err != nil {
		return nil, err
	}
	if in.StaffID == 0 {
		// série exige profissional fixo: o cliente volta sempre com o mesmo
		return nil, httperr.ErrBusiness("invalid_recurrence")
	}

	starts := in.Pattern.Expand(in.FirstStart)
	if len(starts) == 0 {
		return nil, httperr.ErrBusiness("invalid_recurrence")
	}

	// --------------------------------------------------
	// 2️⃣ Persiste o template da série
	// --------------------------------------------------
	series := &models.RecurringSeries{
		PublicID:       uuid.NewString(),
		CustomerID:     in.CustomerID,
		ServiceID:      in.ServiceID,
		StaffID:        in.StaffID,
		Frequency:      string(in.Pattern.Frequency),
		Interval:       in.Pattern.Interval,
		Weekdays:       weekdaysCSV(in.Pattern.Weekdays),
		DayOfMonth:     in.Pattern.DayOfMonth,
		FirstStart:     in.FirstStart,
		EndDate:        in.Pattern.EndDate,
		MaxOccurrences: in.Pattern.MaxOccurrences,
		Notes:          in.Notes,
	}
	if err := uc.repo.CreateSeries(ctx, series); err != nil {
		return nil, httperr.ErrBusiness("failed_to_create_series")
	}

	// --------------------------------------------------
	// 3️⃣ Uma reserva por ocorrência (falha não propaga)
	// --------------------------------------------------
	result := &SeriesResult{Series: series}
	for _, start := range starts {
		req := domain.BookingRequest{
			CustomerID: in.CustomerID,
			ServiceID:  in.ServiceID,
			StaffID:    in.StaffID,
			StartTime:  start,
			Notes:      in.Notes,
			SeriesID:   &series.ID,
		}

		ap, _, err := uc.create.Execute(ctx, req)
		outcome := OccurrenceOutcome{Start: start}
		switch {
		case err == nil:
			outcome.Status = "created"
			outcome.Appointment = ap
			result.Created++
		case domain.IsSlotConflict(err):
			outcome.Status = "skipped_conflict"
			result.Skipped++
		default:
			outcome.Status = "skipped_policy"
			result.Skipped++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func weekdaysCSV(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

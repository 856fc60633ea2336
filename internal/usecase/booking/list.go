package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	start time.Time,
	end time.Time,
	staffID *uint,
) ([]models.Appointment, error) {

	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	return uc.repo.ListAppointments(ctx, start, end, staffID)
}

func (uc *ListBookings) Get(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

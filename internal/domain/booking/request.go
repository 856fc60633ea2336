package booking

import (
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/httperr"
)

// BookingRequest é o pedido de reserva que entra no controller.
// StaffID zero permite auto-atribuição de um profissional qualificado.
type BookingRequest struct {
	CustomerID uint
	ServiceID  uint
	StaffID    uint
	StartTime  time.Time

	Notes         string
	DepositAmount float64

	SeriesID *uint
}

func (r BookingRequest) Validate(now time.Time) error {
	if r.CustomerID == 0 || r.ServiceID == 0 || r.StartTime.IsZero() {
		return httperr.ErrBusiness("invalid_request")
	}
	if !r.StartTime.After(now) {
		return httperr.ErrBusiness("start_in_past")
	}
	return nil
}

package booking

import "github.com/BruksfildServices01/agenda-core/internal/httperr"

// ErrSlotConflict é o resultado esperado de uma corrida perdida pelo
// claim: outro agendamento já ocupa o intervalo. Nunca é re-tentado
// automaticamente — o caller decide outro horário.
var ErrSlotConflict = httperr.ErrBusiness("slot_unavailable")

func IsSlotConflict(err error) bool {
	return httperr.IsBusiness(err, "slot_unavailable")
}

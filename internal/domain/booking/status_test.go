package booking

import (
	"testing"

	"github.com/BruksfildServices01/agenda-core/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusRescheduled},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusNoShow},
		{StatusConfirmed, StatusRescheduled},
	}
	for _, tt := range allowed {
		if err := CanTransition(tt.from, tt.to); err != nil {
			t.Errorf("%s → %s deveria ser permitido: %v", tt.from, tt.to, err)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusCancelled},
		{StatusCompleted, StatusCancelled},
		{StatusNoShow, StatusConfirmed},
		{StatusRescheduled, StatusCancelled},
	}
	for _, tt := range denied {
		err := CanTransition(tt.from, tt.to)
		if err == nil {
			t.Errorf("%s → %s deveria ser negado", tt.from, tt.to)
			continue
		}
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("%s → %s: esperado invalid_state, veio %v", tt.from, tt.to, err)
		}
	}
}

func TestStatus_TerminalAndBlocks(t *testing.T) {
	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusNoShow, StatusRescheduled} {
		if !s.Terminal() {
			t.Errorf("%s deveria ser terminal", s)
		}
		if s.Blocks() {
			t.Errorf("%s não deveria ocupar horário", s)
		}
	}

	for _, s := range []Status{StatusPending, StatusConfirmed} {
		if s.Terminal() {
			t.Errorf("%s não deveria ser terminal", s)
		}
		if !s.Blocks() {
			t.Errorf("%s deveria ocupar horário", s)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus(true) != StatusConfirmed {
		t.Fatal("auto-confirm ligado deveria começar confirmed")
	}
	if InitialStatus(false) != StatusPending {
		t.Fatal("auto-confirm desligado deveria começar pending")
	}
}

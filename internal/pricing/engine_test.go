package pricing

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

var (
	svcA  = &models.Service{ID: 1, Price: 100}
	svcB  = &models.Service{ID: 2, Price: 80}
	staff = &models.Staff{ID: 1}

	// sábado 2026-09-12 às 19:00
	saturdayEvening = time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	// terça 2026-09-08 às 10:00
	tuesdayMorning = time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC)
)

func TestComputePrice_NoRules(t *testing.T) {
	e := NewEngine()
	if got := e.ComputePrice(svcA, staff, tuesdayMorning, 60); got != 100 {
		t.Fatalf("sem regras o preço é o base: %v", got)
	}
	if got := e.ComputePrice(nil, staff, tuesdayMorning, 60); got != 0 {
		t.Fatalf("serviço nulo deveria dar 0: %v", got)
	}
}

func TestComputePrice_PercentageOnWeekend(t *testing.T) {
	e := NewEngine(Rule{
		Type:     RulePercentage,
		Percent:  20,
		Weekdays: []time.Weekday{time.Saturday, time.Sunday},
	})

	if got := e.ComputePrice(svcA, staff, saturdayEvening, 60); got != 120 {
		t.Fatalf("sábado deveria ter 20%%: %v", got)
	}
	if got := e.ComputePrice(svcA, staff, tuesdayMorning, 60); got != 100 {
		t.Fatalf("terça não tem ajuste: %v", got)
	}
}

func TestComputePrice_FixedByHourWindow(t *testing.T) {
	// taxa noturna: 18h às 22h
	e := NewEngine(Rule{Type: RuleFixed, Amount: 15, FromHour: 18, ToHour: 22})

	if got := e.ComputePrice(svcA, staff, saturdayEvening, 60); got != 115 {
		t.Fatalf("19:00 entra na janela noturna: %v", got)
	}
	if got := e.ComputePrice(svcA, staff, tuesdayMorning, 60); got != 100 {
		t.Fatalf("10:00 fora da janela: %v", got)
	}
}

func TestComputePrice_ConditionsByServiceAndStaff(t *testing.T) {
	e := NewEngine(
		Rule{Type: RuleFixed, Amount: 10, ServiceID: 1},
		Rule{Type: RuleFixed, Amount: 5, StaffID: 99},
	)

	if got := e.ComputePrice(svcA, staff, tuesdayMorning, 60); got != 110 {
		t.Fatalf("só a regra do serviço 1 se aplica: %v", got)
	}
	if got := e.ComputePrice(svcB, staff, tuesdayMorning, 60); got != 80 {
		t.Fatalf("nenhuma regra para o serviço 2: %v", got)
	}
}

func TestComputePrice_TieredPicksLargestFit(t *testing.T) {
	e := NewEngine(Rule{
		Type: RuleTiered,
		Tiers: []Tier{
			{MinDurationMin: 30, Amount: 5},
			{MinDurationMin: 60, Amount: 12},
			{MinDurationMin: 120, Amount: 25},
		},
	})

	tests := []struct {
		durationMin int
		want        float64
	}{
		{20, 100},  // nenhuma faixa
		{45, 105},  // faixa 30
		{90, 112},  // faixa 60
		{180, 125}, // faixa 120
	}
	for _, tt := range tests {
		if got := e.ComputePrice(svcA, staff, tuesdayMorning, tt.durationMin); got != tt.want {
			t.Errorf("duração %d: %v != %v", tt.durationMin, got, tt.want)
		}
	}
}

func TestComputePrice_NeverNegativeAndRounded(t *testing.T) {
	e := NewEngine(Rule{Type: RuleFixed, Amount: -150})
	if got := e.ComputePrice(svcA, staff, tuesdayMorning, 60); got != 0 {
		t.Fatalf("preço não pode ser negativo: %v", got)
	}

	e = NewEngine(Rule{Type: RulePercentage, Percent: 33.333})
	got := e.ComputePrice(svcA, staff, tuesdayMorning, 60)
	if got != 133.33 {
		t.Fatalf("arredondamento em 2 casas: %v", got)
	}
}

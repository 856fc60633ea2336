package pricing

import (
	"math"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ======================================================
// RULES
// ======================================================

type RuleType string

const (
	RulePercentage RuleType = "percentage"
	RuleFixed      RuleType = "fixed"
	RuleTiered     RuleType = "tiered"
)

type Tier struct {
	MinDurationMin int
	Amount         float64
}

// Rule é uma variante etiquetada: um tipo, um campo de valor por tipo,
// condições opcionais de serviço/profissional/dia/hora.
type Rule struct {
	Type RuleType

	Percent float64 // percentage: ajuste sobre o preço base
	Amount  float64 // fixed: valor somado
	Tiers   []Tier  // tiered: maior faixa cujo mínimo de duração couber

	// Condições. Zero = qualquer.
	ServiceID uint
	StaffID   uint
	Weekdays  []time.Weekday
	FromHour  int
	ToHour    int
}

func (r Rule) applies(svc *models.Service, staff *models.Staff, start time.Time) bool {
	if r.ServiceID != 0 && (svc == nil || r.ServiceID != svc.ID) {
		return false
	}
	if r.StaffID != 0 && (staff == nil || r.StaffID != staff.ID) {
		return false
	}

	if len(r.Weekdays) > 0 {
		found := false
		for _, wd := range r.Weekdays {
			if wd == start.Weekday() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if r.FromHour != 0 || r.ToHour != 0 {
		h := start.Hour()
		if h < r.FromHour || h >= r.ToHour {
			return false
		}
	}

	return true
}

// ======================================================
// ENGINE
// ======================================================

// Engine avalia as regras sobre o preço base do serviço. O resultado é
// congelado no Appointment na criação (snapshot).
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

func (e *Engine) ComputePrice(
	svc *models.Service,
	staff *models.Staff,
	start time.Time,
	durationMin int,
) float64 {

	if svc == nil {
		return 0
	}

	price := svc.Price

	for _, rule := range e.rules {
		if !rule.applies(svc, staff, start) {
			continue
		}

		switch rule.Type {
		case RulePercentage:
			price += svc.Price * rule.Percent / 100

		case RuleFixed:
			price += rule.Amount

		case RuleTiered:
			best := -1
			for i, tier := range rule.Tiers {
				if durationMin >= tier.MinDurationMin &&
					(best < 0 || tier.MinDurationMin > rule.Tiers[best].MinDurationMin) {
					best = i
				}
			}
			if best >= 0 {
				price += rule.Tiers[best].Amount
			}
		}
	}

	if price < 0 {
		price = 0
	}
	return math.Round(price*100) / 100
}

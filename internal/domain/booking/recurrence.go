package booking

import (
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/httperr"
)

// ===============================
// Recurrence
// ===============================

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Teto de segurança da expansão: nenhuma série materializa mais
// ocorrências que isso, independente do que o padrão pedir.
const maxSeriesOccurrences = 100

type RecurrencePattern struct {
	Frequency Frequency
	Interval  int

	// Filtro de dias da semana (apenas weekly). Vazio = dia da primeira ocorrência.
	Weekdays []time.Weekday

	// Dia fixo do mês (apenas monthly). 0 = dia da primeira ocorrência.
	DayOfMonth int

	EndDate        *time.Time
	MaxOccurrences int
}

func (p RecurrencePattern) Validate() error {
	switch p.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return httperr.ErrBusiness("invalid_recurrence")
	}

	if p.Interval < 0 {
		return httperr.ErrBusiness("invalid_recurrence")
	}

	if p.DayOfMonth < 0 || p.DayOfMonth > 31 {
		return httperr.ErrBusiness("invalid_recurrence")
	}

	if p.EndDate == nil && p.MaxOccurrences <= 0 {
		// horizonte aberto não é permitido
		return httperr.ErrBusiness("invalid_recurrence")
	}

	return nil
}

// Expand materializa os inícios de ocorrência a partir de firstStart,
// em ordem, de forma determinística. firstStart é sempre a primeira
// ocorrência candidata (se compatível com os filtros do padrão).
func (p RecurrencePattern) Expand(firstStart time.Time) []time.Time {
	interval := p.Interval
	if interval < 1 {
		interval = 1
	}

	limit := p.MaxOccurrences
	if limit <= 0 || limit > maxSeriesOccurrences {
		limit = maxSeriesOccurrences
	}

	var out []time.Time
	include := func(t time.Time) bool {
		if p.EndDate != nil && t.After(*p.EndDate) {
			return false
		}
		return true
	}

	switch p.Frequency {
	case FrequencyDaily:
		for t := firstStart; len(out) < limit && include(t); t = t.AddDate(0, 0, interval) {
			out = append(out, t)
		}

	case FrequencyWeekly:
		weekdays := p.Weekdays
		if len(weekdays) == 0 {
			weekdays = []time.Weekday{firstStart.Weekday()}
		}
		allowed := make(map[time.Weekday]bool, len(weekdays))
		for _, wd := range weekdays {
			allowed[wd] = true
		}

		// caminha dia a dia dentro da semana ativa, pulando (interval-1)
		// semanas entre blocos
		weekStart := firstStart
		for len(out) < limit {
			progressed := false
			for d := 0; d < 7 && len(out) < limit; d++ {
				t := weekStart.AddDate(0, 0, d)
				if t.Before(firstStart) || !allowed[t.Weekday()] {
					continue
				}
				if !include(t) {
					return out
				}
				out = append(out, t)
				progressed = true
			}
			weekStart = weekStart.AddDate(0, 0, 7*interval)
			if !progressed && p.EndDate != nil && weekStart.After(*p.EndDate) {
				break
			}
		}

	case FrequencyMonthly:
		day := p.DayOfMonth
		if day <= 0 {
			day = firstStart.Day()
		}
		loc := firstStart.Location()
		h, m := firstStart.Hour(), firstStart.Minute()

		yy, mm := firstStart.Year(), firstStart.Month()
		for months := 0; len(out) < limit && months < 12*maxSeriesOccurrences; months += interval {
			t := time.Date(yy, mm, day, h, m, 0, 0, loc)
			// meses curtos: Date normaliza (31 fev → mar); pula ocorrência inválida
			if t.Day() == day && !t.Before(firstStart) {
				if !include(t) {
					break
				}
				out = append(out, t)
			}
			mm += time.Month(interval)
			for mm > 12 {
				mm -= 12
				yy++
			}
		}
	}

	return out
}

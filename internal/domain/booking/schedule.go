package booking

import (
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// DaySchedule é o expediente de um profissional em um dia da semana,
// com pausa opcional. Horários no formato "15:04".
type DaySchedule struct {
	Active     bool
	StartTime  string
	EndTime    string
	BreakStart string
	BreakEnd   string
}

// ScheduleFromModel converte o cadastro persistido. nil = dia fechado.
func ScheduleFromModel(wh *models.WorkingHours) DaySchedule {
	if wh == nil {
		return DaySchedule{}
	}
	return DaySchedule{
		Active:     wh.Active,
		StartTime:  wh.StartTime,
		EndTime:    wh.EndTime,
		BreakStart: wh.BreakStart,
		BreakEnd:   wh.BreakEnd,
	}
}

// Window materializa o expediente no dia concreto de `day`.
// Retorna false para dia fechado ou horários ausentes.
func (d DaySchedule) Window(day time.Time) (Interval, bool) {
	if !d.Active || d.StartTime == "" || d.EndTime == "" {
		return Interval{}, false
	}

	start := atClock(day, d.StartTime)
	end := atClock(day, d.EndTime)
	if !end.After(start) {
		return Interval{}, false
	}

	return Interval{Start: start, End: end}, true
}

// Break materializa a pausa no dia concreto, se houver.
func (d DaySchedule) Break(day time.Time) (Interval, bool) {
	if d.BreakStart == "" || d.BreakEnd == "" {
		return Interval{}, false
	}

	br := Interval{
		Start: atClock(day, d.BreakStart),
		End:   atClock(day, d.BreakEnd),
	}
	return br, br.Valid()
}

// WithinWorkingHours valida se [start, end) cabe inteiro no expediente
// e não cruza a pausa.
func (d DaySchedule) WithinWorkingHours(start, end time.Time) bool {
	window, ok := d.Window(start)
	if !ok {
		return false
	}

	if start.Before(window.Start) || end.After(window.End) {
		return false
	}

	if br, ok := d.Break(start); ok {
		if (Interval{Start: start, End: end}).Overlaps(br) {
			return false
		}
	}

	return true
}

func atClock(day time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

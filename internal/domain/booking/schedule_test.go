package booking

import (
	"testing"
	"time"
)

func mondaySchedule() DaySchedule {
	return DaySchedule{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "17:00",
	}
}

func TestWithinWorkingHours(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // segunda
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	sched := mondaySchedule()

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"dentro do expediente", at(10, 0), at(11, 0), true},
		{"começa na abertura", at(9, 0), at(10, 0), true},
		{"termina no fechamento", at(16, 0), at(17, 0), true},
		{"antes da abertura", at(8, 0), at(9, 0), false},
		{"passa do fechamento", at(16, 30), at(17, 30), false},
		{"depois do expediente", at(18, 0), at(19, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sched.WithinWorkingHours(tt.start, tt.end); got != tt.want {
				t.Fatalf("WithinWorkingHours = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithinWorkingHours_Break(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	sched := mondaySchedule()
	sched.BreakStart = "12:00"
	sched.BreakEnd = "13:00"

	if sched.WithinWorkingHours(at(11, 30), at(12, 30)) {
		t.Fatal("cruzando o início da pausa deveria ser rejeitado")
	}
	if sched.WithinWorkingHours(at(12, 15), at(12, 45)) {
		t.Fatal("dentro da pausa deveria ser rejeitado")
	}
	if !sched.WithinWorkingHours(at(11, 0), at(12, 0)) {
		t.Fatal("encostando na pausa deveria ser aceito")
	}
	if !sched.WithinWorkingHours(at(13, 0), at(14, 0)) {
		t.Fatal("logo depois da pausa deveria ser aceito")
	}
}

func TestWithinWorkingHours_ClosedDay(t *testing.T) {
	day := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	closed := DaySchedule{}
	if closed.WithinWorkingHours(day, day.Add(time.Hour)) {
		t.Fatal("dia fechado nunca tem expediente")
	}

	inactive := mondaySchedule()
	inactive.Active = false
	if inactive.WithinWorkingHours(day, day.Add(time.Hour)) {
		t.Fatal("dia inativo nunca tem expediente")
	}
}

func TestScheduleFromModel_Nil(t *testing.T) {
	sched := ScheduleFromModel(nil)
	if sched.Active {
		t.Fatal("sem cadastro deveria ser dia fechado")
	}
}

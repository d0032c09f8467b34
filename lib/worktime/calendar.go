package worktime

import (
	"time"
)

// Calendar арифметика рабочих часов организации.
// Часовой пояс — фиксированное смещение от UTC, переходы на
// летнее/зимнее время не поддерживаются.
type Calendar struct {
	loc          *time.Location
	dayStartHour int
	dayEndHour   int
}

func NewCalendar(tzOffsetHours, dayStartHour, dayEndHour int) Calendar {
	return Calendar{
		loc:          time.FixedZone("ORG", tzOffsetHours*3600),
		dayStartHour: dayStartHour,
		dayEndHour:   dayEndHour,
	}
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

func (c Calendar) IsWeekend(t time.Time) bool {
	wd := t.In(c.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DiffWorkingHours количество рабочих часов между from и to.
// Считаются только часы внутри рабочего окна и вне выходных.
// Если to <= from — 0.
func (c Calendar) DiffWorkingHours(from, to time.Time) float64 {
	from = from.In(c.loc)
	to = to.In(c.loc)
	if !to.After(from) {
		return 0
	}
	total := 0.0
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, c.loc)
	for day.Before(to) {
		if !c.IsWeekend(day) {
			winStart := day.Add(time.Duration(c.dayStartHour) * time.Hour)
			winEnd := day.Add(time.Duration(c.dayEndHour) * time.Hour)
			start := winStart
			if from.After(start) {
				start = from
			}
			end := winEnd
			if to.Before(end) {
				end = to
			}
			if end.After(start) {
				total += end.Sub(start).Hours()
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// AddWorkingHours момент, к которому от from пройдёт ровно hours рабочих
// часов. Выходные и время вне рабочего окна пропускаются, частично
// израсходованные дни делятся по границе окна.
func (c Calendar) AddWorkingHours(from time.Time, hours float64) time.Time {
	remaining := time.Duration(hours * float64(time.Hour))
	cur := from.In(c.loc)
	for {
		day := time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, c.loc)
		if c.IsWeekend(cur) {
			cur = day.AddDate(0, 0, 1).Add(time.Duration(c.dayStartHour) * time.Hour)
			continue
		}
		winStart := day.Add(time.Duration(c.dayStartHour) * time.Hour)
		winEnd := day.Add(time.Duration(c.dayEndHour) * time.Hour)
		if cur.Before(winStart) {
			cur = winStart
		}
		if !cur.Before(winEnd) {
			cur = day.AddDate(0, 0, 1).Add(time.Duration(c.dayStartHour) * time.Hour)
			continue
		}
		available := winEnd.Sub(cur)
		if available >= remaining {
			return cur.Add(remaining)
		}
		remaining -= available
		cur = day.AddDate(0, 0, 1).Add(time.Duration(c.dayStartHour) * time.Hour)
	}
}

package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalendar(t *testing.T) {
	cal := NewCalendar(3, 9, 18)
	loc := cal.Location()
	// 2024-06-03 — понедельник
	mon := time.Date(2024, 6, 3, 0, 0, 0, 0, loc)
	fri := time.Date(2024, 6, 7, 0, 0, 0, 0, loc)
	sat := time.Date(2024, 6, 8, 0, 0, 0, 0, loc)
	sun := time.Date(2024, 6, 9, 0, 0, 0, 0, loc)

	t.Run(`IsWeekend`, func(t *testing.T) {
		require.False(t, cal.IsWeekend(mon))
		require.False(t, cal.IsWeekend(fri))
		require.True(t, cal.IsWeekend(sat))
		require.True(t, cal.IsWeekend(sun))
	})

	t.Run(`DiffWorkingHours same instant`, func(t *testing.T) {
		at := mon.Add(12 * time.Hour)
		require.Equal(t, 0.0, cal.DiffWorkingHours(at, at))
		require.Equal(t, 0.0, cal.DiffWorkingHours(at, at.Add(-time.Hour)))
	})

	t.Run(`DiffWorkingHours weekend only`, func(t *testing.T) {
		require.Equal(t, 0.0, cal.DiffWorkingHours(sat.Add(10*time.Hour), sun.Add(20*time.Hour)))
	})

	t.Run(`DiffWorkingHours inside window`, func(t *testing.T) {
		// пятница 17:00 - 18:00 при окне 09:00-18:00
		require.Equal(t, 1.0, cal.DiffWorkingHours(fri.Add(17*time.Hour), fri.Add(18*time.Hour)))
	})

	t.Run(`DiffWorkingHours outside window`, func(t *testing.T) {
		require.Equal(t, 0.0, cal.DiffWorkingHours(mon.Add(19*time.Hour), mon.Add(21*time.Hour)))
		require.Equal(t, 0.0, cal.DiffWorkingHours(mon.Add(6*time.Hour), mon.Add(8*time.Hour)))
	})

	t.Run(`DiffWorkingHours full day`, func(t *testing.T) {
		require.Equal(t, 9.0, cal.DiffWorkingHours(mon.Add(9*time.Hour), mon.Add(24*time.Hour)))
	})

	t.Run(`DiffWorkingHours over weekend`, func(t *testing.T) {
		nextMon := mon.AddDate(0, 0, 7)
		// пятница 17:00 → понедельник 10:00 = 1 + 1
		require.Equal(t, 2.0, cal.DiffWorkingHours(fri.Add(17*time.Hour), nextMon.Add(10*time.Hour)))
	})

	t.Run(`AddWorkingHours review period`, func(t *testing.T) {
		nextMon := mon.AddDate(0, 0, 7)
		// пн 10:00 + 48 рч: 8 в пн, по 9 во вт-пт, остаток 4 на следующий пн
		got := cal.AddWorkingHours(mon.Add(10*time.Hour), 48)
		require.Equal(t, nextMon.Add(13*time.Hour), got)
	})

	t.Run(`AddWorkingHours splits day`, func(t *testing.T) {
		tue := mon.AddDate(0, 0, 1)
		got := cal.AddWorkingHours(mon.Add(17*time.Hour).Add(30*time.Minute), 1)
		require.Equal(t, tue.Add(9*time.Hour).Add(30*time.Minute), got)
	})

	t.Run(`AddWorkingHours from weekend`, func(t *testing.T) {
		nextMon := mon.AddDate(0, 0, 7)
		got := cal.AddWorkingHours(sat.Add(12*time.Hour), 1)
		require.Equal(t, nextMon.Add(10*time.Hour), got)
	})
}

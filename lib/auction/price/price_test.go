package auctionprice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

func moneyTask(startAt, plannedEndAt time.Time, base int64) dbmodels.Task {
	return dbmodels.Task{
		Mode:                models.TaskModeMoney,
		AuctionStartAt:      &startAt,
		AuctionPlannedEndAt: &plannedEndAt,
		BasePrice:           decimal.NewFromInt(base),
	}
}

func TestCurrent(t *testing.T) {
	schedule := NewSchedule(3, 2, 1.5)
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Hour) // 20:00 того же дня

	t.Run(`no auction window`, func(t *testing.T) {
		_, err := schedule.Current(dbmodels.Task{Mode: models.TaskModeMoney}, start)
		require.ErrorIs(t, err, models.ErrNoAuctionWindow)
	})

	t.Run(`before start is base`, func(t *testing.T) {
		task := moneyTask(start, end, 100)
		value, err := schedule.Current(task, start.Add(-2*time.Hour))
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(100).Equal(value.Money))
	})

	t.Run(`reference day schedule`, func(t *testing.T) {
		task := moneyTask(start, end, 100)
		// до второй контрольной точки (13:00) стоимость базовая
		for _, offset := range []time.Duration{0, time.Hour, 2 * time.Hour, 3*time.Hour - time.Minute} {
			value, err := schedule.Current(task, start.Add(offset))
			require.NoError(t, err)
			require.True(t, decimal.NewFromInt(100).Equal(value.Money), "offset %v: %v", offset, value.Money)
		}
		// 16:00 — частичная наценка
		value, err := schedule.Current(task, start.Add(6*time.Hour))
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(125).Equal(value.Money), "got %v", value.Money)
		// 19:00 и далее — потолок
		for _, offset := range []time.Duration{9 * time.Hour, 10 * time.Hour, 26 * time.Hour} {
			value, err = schedule.Current(task, start.Add(offset))
			require.NoError(t, err)
			require.True(t, decimal.NewFromInt(150).Equal(value.Money), "offset %v: %v", offset, value.Money)
		}
	})

	t.Run(`monotonic and bounded`, func(t *testing.T) {
		task := moneyTask(start, end, 100)
		prev := decimal.Zero
		for offset := -time.Hour; offset <= 14*time.Hour; offset += 15 * time.Minute {
			value, err := schedule.Current(task, start.Add(offset))
			require.NoError(t, err)
			require.True(t, value.Money.GreaterThanOrEqual(decimal.NewFromInt(100)))
			require.True(t, value.Money.LessThanOrEqual(decimal.NewFromInt(150)))
			require.True(t, value.Money.GreaterThanOrEqual(prev), "offset %v", offset)
			prev = value.Money
		}
	})

	t.Run(`frozen once bids exist`, func(t *testing.T) {
		task := moneyTask(start, end, 100)
		task.AuctionHasBids = true
		task.CurrentPrice = decimal.NewFromInt(120)
		for _, offset := range []time.Duration{0, 6 * time.Hour, 24 * time.Hour} {
			value, err := schedule.Current(task, start.Add(offset))
			require.NoError(t, err)
			require.True(t, decimal.NewFromInt(120).Equal(value.Money))
		}
	})

	t.Run(`frozen falls back to base`, func(t *testing.T) {
		task := moneyTask(start, end, 100)
		task.AuctionHasBids = true
		value, err := schedule.Current(task, start.Add(9*time.Hour))
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(100).Equal(value.Money))
	})

	t.Run(`time mode rounds to minutes`, func(t *testing.T) {
		task := dbmodels.Task{
			Mode:                models.TaskModeTime,
			AuctionStartAt:      &start,
			AuctionPlannedEndAt: &end,
			BaseTimeMinutes:     90,
		}
		value, err := schedule.Current(task, start.Add(6*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 113, value.TimeMinutes) // 90 * 1.25 = 112.5

		ceiling := schedule.Ceiling(task)
		require.Equal(t, 135, ceiling.TimeMinutes)
	})

	t.Run(`time mode minimum one minute`, func(t *testing.T) {
		task := dbmodels.Task{
			Mode:                models.TaskModeTime,
			AuctionStartAt:      &start,
			AuctionPlannedEndAt: &end,
			BaseTimeMinutes:     0,
		}
		value, err := schedule.Current(task, start)
		require.NoError(t, err)
		require.Equal(t, 1, value.TimeMinutes)
	})

	t.Run(`short window stays at base`, func(t *testing.T) {
		// окно в 6 часов даёт 3 контрольные точки и ни одного шага роста
		task := moneyTask(start, start.Add(6*time.Hour), 100)
		for offset := time.Duration(0); offset <= 8*time.Hour; offset += time.Hour {
			value, err := schedule.Current(task, start.Add(offset))
			require.NoError(t, err)
			require.True(t, decimal.NewFromInt(100).Equal(value.Money))
		}
	})
}

package auctionprice

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

// Value текущая стоимость аукциона. В зависимости от режима задачи
// заполнено либо денежное поле, либо минуты.
type Value struct {
	Mode        models.TaskMode
	Money       decimal.Decimal
	TimeMinutes int
}

// Schedule расписание удорожания аукциона. Контрольные точки идут с шагом
// interval от начала аукциона (точка №1 — сам момент старта), первые
// graceCheckpoints точек стоимость не меняют, дальше стоимость растёт
// равными шагами до потолка ceiling*base к плановому окончанию.
type Schedule struct {
	interval         time.Duration
	graceCheckpoints int
	ceiling          float64
}

func NewSchedule(checkpointIntervalHours, graceCheckpoints int, ceilingMultiplier float64) Schedule {
	return Schedule{
		interval:         time.Duration(checkpointIntervalHours) * time.Hour,
		graceCheckpoints: graceCheckpoints,
		ceiling:          ceilingMultiplier,
	}
}

// Current текущая стоимость аукциона задачи на момент now.
// Для задачи без окна аукциона возвращает ErrNoAuctionWindow.
// При наличии активных ставок стоимость заморожена: рост по времени
// останавливается, цену дальше определяет конкуренция ставок.
func (s Schedule) Current(task dbmodels.Task, now time.Time) (*Value, error) {
	if !task.HasAuctionWindow() {
		return nil, models.ErrNoAuctionWindow
	}
	if task.AuctionHasBids {
		return s.frozen(task), nil
	}
	mult := s.multiplier(*task.AuctionStartAt, *task.AuctionPlannedEndAt, now)
	return s.valueAt(task, mult), nil
}

// Ceiling абсолютный потолок стоимости задачи
func (s Schedule) Ceiling(task dbmodels.Task) *Value {
	return s.valueAt(task, s.ceiling)
}

func (s Schedule) frozen(task dbmodels.Task) *Value {
	value := Value{Mode: task.Mode}
	switch task.Mode {
	case models.TaskModeTime:
		value.TimeMinutes = task.CurrentTimeMinutes
		if value.TimeMinutes == 0 {
			value.TimeMinutes = task.BaseTimeMinutes
		}
	default:
		value.Money = task.CurrentPrice
		if value.Money.IsZero() {
			value.Money = task.BasePrice
		}
	}
	return &value
}

func (s Schedule) valueAt(task dbmodels.Task, mult float64) *Value {
	value := Value{Mode: task.Mode}
	switch task.Mode {
	case models.TaskModeTime:
		minutes := int(math.Round(float64(task.BaseTimeMinutes) * mult))
		if minutes < 1 {
			minutes = 1
		}
		value.TimeMinutes = minutes
	default:
		value.Money = task.BasePrice.Mul(decimal.NewFromFloat(mult)).Round(2)
	}
	return &value
}

// multiplier дискретный множитель стоимости в [1, ceiling].
// Всего в окне ceil(окно/interval)+1 контрольных точек, шагов роста —
// на graceCheckpoints+1 меньше. Время прижимается к плановому окончанию,
// поэтому множитель монотонно не убывает и ограничен сверху.
func (s Schedule) multiplier(startAt, plannedEndAt, now time.Time) float64 {
	if !now.After(startAt) {
		return 1
	}
	if now.After(plannedEndAt) {
		now = plannedEndAt
	}
	window := plannedEndAt.Sub(startAt)
	if window <= 0 {
		return 1
	}
	total := int((window+s.interval-1)/s.interval) + 1
	steps := total - (s.graceCheckpoints + 1)
	if steps <= 0 {
		return 1
	}
	reached := int(now.Sub(startAt)/s.interval) + 1
	if reached > total {
		reached = total
	}
	passed := reached - s.graceCheckpoints
	if passed <= 0 {
		return 1
	}
	mult := 1 + float64(passed)*(s.ceiling-1)/float64(steps)
	if mult > s.ceiling {
		mult = s.ceiling
	}
	return mult
}

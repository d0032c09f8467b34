package auctionbidhandler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	auctionprice "task-exchange-backend/lib/auction/price"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

func makeBacklogTask(startAt, plannedEndAt time.Time) dbmodels.Task {
	return dbmodels.Task{
		BaseModel:           dbmodels.BaseModel{ID: "task-1"},
		Status:              models.TaskStatusBacklog,
		TaskType:            models.TaskTypeUnit,
		Mode:                models.TaskModeMoney,
		CreatorID:           "creator-1",
		MinimumGrade:        models.GradeC,
		BasePrice:           decimal.NewFromInt(100),
		AuctionStartAt:      &startAt,
		AuctionPlannedEndAt: &plannedEndAt,
	}
}

func makeBidder(id string, grade models.Grade) dbmodels.Employee {
	return dbmodels.Employee{
		BaseModel: dbmodels.BaseModel{ID: id},
		Role:      models.UserRoleEmployee,
		Status:    models.EmployeeWorkingStatus,
		Grade:     grade,
	}
}

func TestPlaceGuard(t *testing.T) {
	startAt := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	plannedEndAt := startAt.Add(10 * time.Hour)
	now := startAt.Add(time.Hour)
	handler := impl{}
	bid := dbmodels.AuctionBid{ValueMoney: decimal.NewFromInt(90)}

	t.Run("ставка на открытый аукцион проходит", func(t *testing.T) {
		err := handler.guard(makeBacklogTask(startAt, plannedEndAt), makeBidder("emp-1", models.GradeB), bid, now)
		require.NoError(t, err)
	})

	t.Run("аукцион вне бэклога закрыт для ставок", func(t *testing.T) {
		rec := makeBacklogTask(startAt, plannedEndAt)
		rec.Status = models.TaskStatusInProgress
		err := handler.guard(rec, makeBidder("emp-1", models.GradeB), bid, now)
		require.ErrorIs(t, err, models.ErrAuctionClosed)
	})

	t.Run("индивидуальная задача не торгуется", func(t *testing.T) {
		rec := makeBacklogTask(startAt, plannedEndAt)
		rec.TaskType = models.TaskTypeIndividual
		err := handler.guard(rec, makeBidder("emp-1", models.GradeB), bid, now)
		require.ErrorIs(t, err, models.ErrAuctionClosed)
	})

	t.Run("до начала окна ставки не принимаются", func(t *testing.T) {
		err := handler.guard(makeBacklogTask(startAt, plannedEndAt), makeBidder("emp-1", models.GradeB), bid, startAt.Add(-time.Minute))
		require.ErrorIs(t, err, models.ErrNoAuctionWindow)
	})

	t.Run("постановщик не ставит на свою задачу", func(t *testing.T) {
		err := handler.guard(makeBacklogTask(startAt, plannedEndAt), makeBidder("creator-1", models.GradeB), bid, now)
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("администратор не участвует в торгах", func(t *testing.T) {
		admin := makeBidder("admin-1", models.GradeA)
		admin.Role = models.UserRoleAdmin
		err := handler.guard(makeBacklogTask(startAt, plannedEndAt), admin, bid, now)
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("грейд ниже минимального", func(t *testing.T) {
		err := handler.guard(makeBacklogTask(startAt, plannedEndAt), makeBidder("emp-1", models.GradeD), bid, now)
		require.ErrorIs(t, err, models.ErrGradeTooLow)
	})
}

func TestBeatsValue(t *testing.T) {
	t.Run("деньги: строго ниже текущей стоимости", func(t *testing.T) {
		current := auctionprice.Value{Mode: models.TaskModeMoney, Money: decimal.NewFromInt(100)}
		require.True(t, beatsValue(dbmodels.AuctionBid{ValueMoney: decimal.NewFromInt(99)}, current))
		require.False(t, beatsValue(dbmodels.AuctionBid{ValueMoney: decimal.NewFromInt(100)}, current))
		require.False(t, beatsValue(dbmodels.AuctionBid{ValueMoney: decimal.NewFromInt(101)}, current))
	})

	t.Run("время: строго меньше минут", func(t *testing.T) {
		current := auctionprice.Value{Mode: models.TaskModeTime, TimeMinutes: 90}
		require.True(t, beatsValue(dbmodels.AuctionBid{ValueTimeMinutes: 89}, current))
		require.False(t, beatsValue(dbmodels.AuctionBid{ValueTimeMinutes: 90}, current))
	})
}

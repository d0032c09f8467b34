package auctionhandler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	auctionprice "task-exchange-backend/lib/auction/price"
	taskapimodels "task-exchange-backend/models/api/task"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

type fakeTaskStore struct {
	tasks      map[string]dbmodels.Task
	closeCalls int
	lastUpdMap map[string]interface{}
}

func (f *fakeTaskStore) Create(rec dbmodels.Task) (string, error) { return rec.ID, nil }

func (f *fakeTaskStore) GetByID(id string) (*dbmodels.Task, error) {
	rec, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTaskStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeTaskStore) UpdateWithStatus(id string, current models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	return false, nil
}

func (f *fakeTaskStore) List(filter taskapimodels.TaskFilter) ([]dbmodels.Task, int64, error) {
	return nil, 0, nil
}

func (f *fakeTaskStore) CloseAuction(taskID string, updMap map[string]interface{}) (bool, error) {
	f.closeCalls++
	f.lastUpdMap = updMap
	rec, ok := f.tasks[taskID]
	if !ok || rec.Status != models.TaskStatusBacklog {
		return false, nil
	}
	rec.Status = models.TaskStatusInProgress
	if executorID, ok := updMap["executor_id"].(string); ok {
		rec.ExecutorID = executorID
	}
	f.tasks[taskID] = rec
	return true, nil
}

func (f *fakeTaskStore) ListAuctionsToClose(now time.Time) ([]dbmodels.Task, error) {
	list := []dbmodels.Task{}
	for _, rec := range f.tasks {
		if rec.Status != models.TaskStatusBacklog || !rec.TaskType.IsAuctionable() {
			continue
		}
		if rec.AuctionPlannedEndAt != nil && !rec.AuctionPlannedEndAt.After(now) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeTaskStore) ListExpiredReviews(now time.Time) ([]dbmodels.Task, error) {
	return nil, nil
}

type fakeBidStore struct {
	bids map[string][]dbmodels.AuctionBid
}

func (f *fakeBidStore) Create(rec dbmodels.AuctionBid) (string, error) { return rec.ID, nil }

func (f *fakeBidStore) ListActiveByTask(taskID string) ([]dbmodels.AuctionBid, error) {
	return f.bids[taskID], nil
}

func (f *fakeBidStore) ListCompetingByTask(taskID string) ([]dbmodels.AuctionBid, error) {
	return f.bids[taskID], nil
}

func (f *fakeBidStore) ListByTask(taskID string) ([]dbmodels.AuctionBid, error) {
	return f.bids[taskID], nil
}

func (f *fakeBidStore) DeactivateByTask(taskID string) error { return nil }

func (f *fakeBidStore) DeactivateByBidder(bidderID string) ([]string, error) { return nil, nil }

func (f *fakeBidStore) HasActiveBids(taskID string) (bool, error) {
	return len(f.bids[taskID]) > 0, nil
}

type fakeEmployeeStore struct {
	employees map[string]dbmodels.Employee
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) { return rec.ID, nil }

func (f *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	rec, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeEmployeeStore) GetByEmail(email string) (*dbmodels.Employee, error) { return nil, nil }

func (f *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeEmployeeStore) List() ([]dbmodels.Employee, error) { return nil, nil }

func (f *fakeEmployeeStore) ExistByEmail(email string) (bool, error) { return false, nil }

func newTestHandler(taskStore *fakeTaskStore, bidStore *fakeBidStore, employeeStore *fakeEmployeeStore) impl {
	return impl{
		taskStore:     taskStore,
		bidStore:      bidStore,
		employeeStore: employeeStore,
		schedule:      auctionprice.NewSchedule(3, 2, 1.5),
		noBidGrace:    3 * time.Hour,
	}
}

func makeAuctionTask(id string, startAt, plannedEndAt time.Time) dbmodels.Task {
	return dbmodels.Task{
		BaseModel:           dbmodels.BaseModel{ID: id},
		Title:               "Подготовить отчёт",
		Status:              models.TaskStatusBacklog,
		TaskType:            models.TaskTypeUnit,
		Mode:                models.TaskModeMoney,
		CreatorID:           "creator-1",
		BasePrice:           decimal.NewFromInt(100),
		AuctionStartAt:      &startAt,
		AuctionPlannedEndAt: &plannedEndAt,
	}
}

func makeBid(id, bidderID string, money int64, points int, createdAt time.Time) dbmodels.AuctionBid {
	return dbmodels.AuctionBid{
		BaseModel:    dbmodels.BaseModel{ID: id, CreatedAt: createdAt},
		TaskID:       "task-1",
		BidderID:     bidderID,
		BidderPoints: points,
		ValueMoney:   decimal.NewFromInt(money),
		IsActive:     true,
	}
}

func TestSettleOne(t *testing.T) {
	startAt := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	plannedEndAt := startAt.Add(10 * time.Hour)

	t.Run("закрытие по лучшей ставке после планового окончания", func(t *testing.T) {
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{
			"task-1": makeAuctionTask("task-1", startAt, plannedEndAt),
		}}
		bidStore := &fakeBidStore{bids: map[string][]dbmodels.AuctionBid{
			"task-1": {
				makeBid("bid-1", "emp-1", 90, 50, startAt.Add(time.Hour)),
				makeBid("bid-2", "emp-2", 85, 70, startAt.Add(2*time.Hour)),
			},
		}}
		handler := newTestHandler(taskStore, bidStore, &fakeEmployeeStore{})

		err := handler.SettleOne(taskStore.tasks["task-1"], plannedEndAt.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, 1, taskStore.closeCalls)
		require.Equal(t, models.TaskStatusInProgress, taskStore.tasks["task-1"].Status)
		require.Equal(t, "emp-2", taskStore.tasks["task-1"].ExecutorID)
		require.Equal(t, models.TaskStatusInProgress, taskStore.lastUpdMap["status"])
		require.Equal(t, false, taskStore.lastUpdMap["auction_has_bids"])
		earned, ok := taskStore.lastUpdMap["earned_money"].(decimal.Decimal)
		require.True(t, ok)
		require.True(t, earned.Equal(decimal.NewFromInt(85)))
	})

	t.Run("со ставками до планового окончания закрытия нет", func(t *testing.T) {
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{
			"task-1": makeAuctionTask("task-1", startAt, plannedEndAt),
		}}
		bidStore := &fakeBidStore{bids: map[string][]dbmodels.AuctionBid{
			"task-1": {makeBid("bid-1", "emp-1", 90, 50, startAt.Add(time.Hour))},
		}}
		handler := newTestHandler(taskStore, bidStore, &fakeEmployeeStore{})

		err := handler.SettleOne(taskStore.tasks["task-1"], plannedEndAt.Add(-time.Hour))
		require.NoError(t, err)
		require.Equal(t, 0, taskStore.closeCalls)
		require.Equal(t, models.TaskStatusBacklog, taskStore.tasks["task-1"].Status)
	})

	t.Run("без ставок в льготный период закрытия нет", func(t *testing.T) {
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{
			"task-1": makeAuctionTask("task-1", startAt, plannedEndAt),
		}}
		handler := newTestHandler(taskStore, &fakeBidStore{}, &fakeEmployeeStore{})

		err := handler.SettleOne(taskStore.tasks["task-1"], plannedEndAt.Add(2*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 0, taskStore.closeCalls)
	})

	t.Run("без ставок после льготного периода задача уходит постановщику", func(t *testing.T) {
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{
			"task-1": makeAuctionTask("task-1", startAt, plannedEndAt),
		}}
		employeeStore := &fakeEmployeeStore{employees: map[string]dbmodels.Employee{
			"creator-1": {
				BaseModel: dbmodels.BaseModel{ID: "creator-1"},
				Role:      models.UserRoleEmployee,
				Status:    models.EmployeeWorkingStatus,
			},
		}}
		handler := newTestHandler(taskStore, &fakeBidStore{}, employeeStore)

		err := handler.SettleOne(taskStore.tasks["task-1"], plannedEndAt.Add(3*time.Hour+time.Minute))
		require.NoError(t, err)
		require.Equal(t, 1, taskStore.closeCalls)
		require.Equal(t, "creator-1", taskStore.tasks["task-1"].ExecutorID)
		// окно полностью истекло, постановщик получает потолок стоимости
		earned, ok := taskStore.lastUpdMap["earned_money"].(decimal.Decimal)
		require.True(t, ok)
		require.True(t, earned.Equal(decimal.NewFromInt(150)))
	})

	t.Run("флаг ставок без конкурирующих ставок не блокирует передачу постановщику", func(t *testing.T) {
		rec := makeAuctionTask("task-1", startAt, plannedEndAt)
		// флаг остался от уже снятой ставки
		rec.AuctionHasBids = true
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{"task-1": rec}}
		employeeStore := &fakeEmployeeStore{employees: map[string]dbmodels.Employee{
			"creator-1": {
				BaseModel: dbmodels.BaseModel{ID: "creator-1"},
				Role:      models.UserRoleEmployee,
				Status:    models.EmployeeWorkingStatus,
			},
		}}
		handler := newTestHandler(taskStore, &fakeBidStore{}, employeeStore)

		err := handler.SettleOne(rec, plannedEndAt.Add(3*time.Hour+time.Minute))
		require.NoError(t, err)
		require.Equal(t, 1, taskStore.closeCalls)
		require.Equal(t, "creator-1", taskStore.tasks["task-1"].ExecutorID)
	})

	t.Run("аукцион администратора без ставок остаётся открытым", func(t *testing.T) {
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{
			"task-1": makeAuctionTask("task-1", startAt, plannedEndAt),
		}}
		employeeStore := &fakeEmployeeStore{employees: map[string]dbmodels.Employee{
			"creator-1": {
				BaseModel: dbmodels.BaseModel{ID: "creator-1"},
				Role:      models.UserRoleAdmin,
				Status:    models.EmployeeWorkingStatus,
			},
		}}
		handler := newTestHandler(taskStore, &fakeBidStore{}, employeeStore)

		err := handler.SettleOne(taskStore.tasks["task-1"], plannedEndAt.Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 0, taskStore.closeCalls)
		require.Equal(t, models.TaskStatusBacklog, taskStore.tasks["task-1"].Status)
	})

	t.Run("повторное закрытие — no-op", func(t *testing.T) {
		rec := makeAuctionTask("task-1", startAt, plannedEndAt)
		rec.Status = models.TaskStatusInProgress
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{"task-1": rec}}
		handler := newTestHandler(taskStore, &fakeBidStore{}, &fakeEmployeeStore{})

		err := handler.SettleOne(rec, plannedEndAt.Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 0, taskStore.closeCalls)
	})

	t.Run("проигрыш гонки за закрытие — штатная ситуация", func(t *testing.T) {
		rec := makeAuctionTask("task-1", startAt, plannedEndAt)
		closedRec := rec
		closedRec.Status = models.TaskStatusInProgress
		// в хранилище задача уже закрыта другим писателем,
		// а обработчик работает со снимком из бэклога
		taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{"task-1": closedRec}}
		bidStore := &fakeBidStore{bids: map[string][]dbmodels.AuctionBid{
			"task-1": {makeBid("bid-1", "emp-1", 90, 50, startAt.Add(time.Hour))},
		}}
		handler := newTestHandler(taskStore, bidStore, &fakeEmployeeStore{})

		err := handler.SettleOne(rec, plannedEndAt.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, 1, taskStore.closeCalls)
		require.Equal(t, models.TaskStatusInProgress, taskStore.tasks["task-1"].Status)
	})
}

func TestEarnedValue(t *testing.T) {
	startAt := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	plannedEndAt := startAt.Add(10 * time.Hour)
	handler := newTestHandler(&fakeTaskStore{}, &fakeBidStore{}, &fakeEmployeeStore{})
	rec := makeAuctionTask("task-1", startAt, plannedEndAt)

	t.Run("с победителем — значение его ставки", func(t *testing.T) {
		winner := makeBid("bid-1", "emp-1", 85, 50, startAt.Add(time.Hour))
		earned := handler.EarnedValue(rec, &winner, plannedEndAt)
		require.True(t, earned.Money.Equal(decimal.NewFromInt(85)))
	})

	t.Run("без победителя после планового окончания — потолок", func(t *testing.T) {
		earned := handler.EarnedValue(rec, nil, plannedEndAt.Add(time.Hour))
		require.True(t, earned.Money.Equal(decimal.NewFromInt(150)))
	})

	t.Run("без победителя внутри окна — текущая стоимость", func(t *testing.T) {
		earned := handler.EarnedValue(rec, nil, startAt.Add(6*time.Hour))
		require.True(t, earned.Money.Equal(decimal.NewFromInt(125)))
	})

	t.Run("режим времени — минуты ставки победителя", func(t *testing.T) {
		timeRec := rec
		timeRec.Mode = models.TaskModeTime
		timeRec.BaseTimeMinutes = 90
		winner := dbmodels.AuctionBid{
			BaseModel:        dbmodels.BaseModel{ID: "bid-1"},
			BidderID:         "emp-1",
			ValueTimeMinutes: 75,
			IsActive:         true,
		}
		earned := handler.EarnedValue(timeRec, &winner, plannedEndAt)
		require.Equal(t, 75, earned.TimeMinutes)
	})
}

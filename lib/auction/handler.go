package auctionhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"task-exchange-backend/config"
	auctionbidstore "task-exchange-backend/lib/auction-bid/store"
	auctionprice "task-exchange-backend/lib/auction/price"
	auctionranking "task-exchange-backend/lib/auction/ranking"
	employeestore "task-exchange-backend/lib/employee/store"
	"task-exchange-backend/lib/smtp"
	taskstore "task-exchange-backend/lib/task/store"
	"task-exchange-backend/lib/utils/helpers"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	"task-exchange-backend/db"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	// ShouldAutoAssignToCreator аукцион без ставок отдаётся постановщику
	// после планового окончания плюс льготный период
	ShouldAutoAssignToCreator(task dbmodels.Task, now time.Time) bool
	// EarnedValue стоимость, причитающаяся исполнителю при закрытии
	EarnedValue(task dbmodels.Task, winner *dbmodels.AuctionBid, now time.Time) *auctionprice.Value
	// SettleOne закрытие одного аукциона, если его условие наступило.
	// Повторный вызов по уже закрытой задаче — no-op.
	SettleOne(task dbmodels.Task, now time.Time) error
	// SettleDue закрытие всех аукционов с наступившим условием,
	// вызывается фоновой задачей
	SettleDue(ctx context.Context)
}

var Instance Provider

func NewHandler(schedule auctionprice.Schedule) {
	instance := impl{
		taskStore:     taskstore.NewInstance(db.DB),
		bidStore:      auctionbidstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		schedule:      schedule,
		noBidGrace:    time.Duration(config.Conf.Auction.NoBidGraceHours) * time.Hour,
	}
	initchecker.CheckInit(
		"taskStore", instance.taskStore,
		"bidStore", instance.bidStore,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	taskStore     taskstore.Provider
	bidStore      auctionbidstore.Provider
	employeeStore employeestore.Provider
	schedule      auctionprice.Schedule
	noBidGrace    time.Duration
}

func (i impl) getLogger(taskID string) *log.Entry {
	logger := log.
		WithField("task_id", taskID)
	return logger
}

func (i impl) ShouldAutoAssignToCreator(task dbmodels.Task, now time.Time) bool {
	// отсутствие ставок определяет вызывающий по конкурирующим ставкам,
	// флаг задачи мог остаться от уже снятой ставки
	if !task.HasAuctionWindow() {
		return false
	}
	return now.After(task.AuctionPlannedEndAt.Add(i.noBidGrace))
}

func (i impl) EarnedValue(task dbmodels.Task, winner *dbmodels.AuctionBid, now time.Time) *auctionprice.Value {
	if winner != nil {
		value := auctionprice.Value{Mode: task.Mode}
		switch task.Mode {
		case models.TaskModeTime:
			value.TimeMinutes = winner.ValueTimeMinutes
		default:
			value.Money = winner.ValueMoney
		}
		return &value
	}
	// без ставок: стоимость на момент закрытия, после полного истечения
	// окна — абсолютный потолок
	if task.AuctionPlannedEndAt != nil && !now.Before(*task.AuctionPlannedEndAt) {
		return i.schedule.Ceiling(task)
	}
	value, err := i.schedule.Current(task, now)
	if err != nil {
		return i.schedule.Ceiling(task)
	}
	return value
}

func (i impl) SettleOne(task dbmodels.Task, now time.Time) error {
	logger := i.getLogger(task.ID)
	// идемпотентность: уже закрытые аукционы не трогаем
	if task.Status != models.TaskStatusBacklog {
		return nil
	}
	if !task.TaskType.IsAuctionable() || !task.HasAuctionWindow() {
		return nil
	}
	bids, err := i.bidStore.ListCompetingByTask(task.ID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения ставок аукциона")
	}
	if len(bids) == 0 {
		if !i.ShouldAutoAssignToCreator(task, now) {
			// льготный период ещё идёт, проверим на следующем проходе
			return nil
		}
		creator, err := i.employeeStore.GetByID(task.CreatorID)
		if err != nil {
			return err
		}
		if creator == nil || creator.Role.IsAdmin() {
			// аукцион администратора без ставок оставляем открытым
			return nil
		}
		earned := i.EarnedValue(task, nil, now)
		closed, err := i.close(task, creator.ID, earned, now)
		if err != nil {
			return err
		}
		if closed {
			logger.
				WithField("executor_id", creator.ID).
				Info("аукцион без ставок: задача передана постановщику")
			i.notify(*creator, task, earned)
		}
		return nil
	}
	if now.Before(*task.AuctionPlannedEndAt) {
		// конкуренция ещё идёт
		return nil
	}
	winner := auctionranking.SelectWinner(bids, task.Mode)
	earned := i.EarnedValue(task, winner, now)
	closed, err := i.close(task, winner.BidderID, earned, now)
	if err != nil {
		return err
	}
	if closed {
		logger.
			WithField("executor_id", winner.BidderID).
			WithField("bid_id", winner.ID).
			Info("аукцион закрыт по лучшей ставке")
		if winner.Bidder != nil {
			i.notify(*winner.Bidder, task, earned)
		}
	}
	return nil
}

// close условное закрытие: победит ровно один писатель, проигравший
// получает closed=false и считает это штатной ситуацией
func (i impl) close(task dbmodels.Task, executorID string, earned *auctionprice.Value, now time.Time) (bool, error) {
	updMap := map[string]interface{}{
		"status":           models.TaskStatusInProgress,
		"executor_id":      executorID,
		"auction_end_at":   now,
		"auction_has_bids": false,
	}
	switch task.Mode {
	case models.TaskModeTime:
		updMap["earned_time_minutes"] = earned.TimeMinutes
	default:
		updMap["earned_money"] = earned.Money
	}
	closed, err := i.taskStore.CloseAuction(task.ID, updMap)
	if err != nil {
		return false, errors.Wrap(err, "ошибка закрытия аукциона")
	}
	if !closed {
		i.getLogger(task.ID).Info("аукцион уже закрыт другим писателем")
	}
	return closed, nil
}

func (i impl) SettleDue(ctx context.Context) {
	logger := log.WithField("job", "auction_settle")
	now := time.Now()
	list, err := i.taskStore.ListAuctionsToClose(now)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка аукционов для закрытия")
		return
	}
	for _, task := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if err = i.SettleOne(task, now); err != nil {
			// ошибка одного аукциона не прерывает обход остальных
			logger.
				WithError(err).
				WithField("task_id", task.ID).
				Error("Ошибка закрытия аукциона")
			continue
		}
	}
}

func (i impl) notify(executor dbmodels.Employee, task dbmodels.Task, earned *auctionprice.Value) {
	if smtp.Instance == nil || executor.Email == "" {
		return
	}
	var valueText string
	switch task.Mode {
	case models.TaskModeTime:
		valueText = fmt.Sprintf("%v мин.", earned.TimeMinutes)
	default:
		valueText = earned.Money.StringFixed(2)
	}
	message := fmt.Sprintf("Задача «%v» закреплена за вами, стоимость: %v", task.Title, valueText)
	go func() {
		_ = smtp.Instance.SendEMail(config.Conf.Smtp.From, executor.Email, message, "Аукцион закрыт")
	}()
}

package auctionbidhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	auctionbidstore "task-exchange-backend/lib/auction-bid/store"
	auctionprice "task-exchange-backend/lib/auction/price"
	auctionranking "task-exchange-backend/lib/auction/ranking"
	employeestore "task-exchange-backend/lib/employee/store"
	taskstore "task-exchange-backend/lib/task/store"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	"task-exchange-backend/db"
	"task-exchange-backend/models"
	taskapimodels "task-exchange-backend/models/api/task"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	// Place размещение ставки на аукционную задачу в бэклоге.
	// Ставка должна быть строго ниже текущей стоимости и строго лучше
	// лучшей активной ставки по порядку ранжирования.
	Place(bidderID, taskID string, request taskapimodels.BidData) (id string, err error)
	// CurrentValue текущая стоимость аукциона задачи
	CurrentValue(taskID string) (view taskapimodels.CurrentValueView, err error)
	// ListByTask история ставок задачи
	ListByTask(taskID string) (list []taskapimodels.BidView, err error)
}

var Instance Provider

func NewHandler(schedule auctionprice.Schedule) {
	instance := impl{
		store:         auctionbidstore.NewInstance(db.DB),
		taskStore:     taskstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		schedule:      schedule,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"taskStore", instance.taskStore,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         auctionbidstore.Provider
	taskStore     taskstore.Provider
	employeeStore employeestore.Provider
	schedule      auctionprice.Schedule
}

func (i impl) Place(bidderID, taskID string, request taskapimodels.BidData) (id string, err error) {
	logger := log.
		WithField("task_id", taskID).
		WithField("user_id", bidderID)
	rec, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.New("задача не найдена")
	}
	if err = request.Validate(rec.Mode); err != nil {
		return "", err
	}
	bidder, err := i.employeeStore.GetByID(bidderID)
	if err != nil {
		return "", err
	}
	if bidder == nil || !bidder.IsWorking() {
		return "", errors.New("участник не найден в справочнике сотрудников")
	}
	now := time.Now()
	bid := dbmodels.AuctionBid{
		TaskID:           taskID,
		BidderID:         bidderID,
		BidderGrade:      bidder.Grade,
		BidderPoints:     bidder.Points,
		ValueMoney:       request.ValueMoney,
		ValueTimeMinutes: request.ValueTimeMinutes,
		IsActive:         true,
	}
	if err = i.guard(*rec, *bidder, bid, now); err != nil {
		return "", err
	}
	current, err := i.schedule.Current(*rec, now)
	if err != nil {
		return "", err
	}
	if !beatsValue(bid, *current) {
		return "", models.ErrBidTooLow
	}
	best, err := i.bestActive(taskID, rec.Mode)
	if err != nil {
		return "", err
	}
	if best != nil && !auctionranking.Less(bid, *best, rec.Mode) {
		return "", models.ErrBetterBidExists
	}
	// вставка ставки и фиксация стоимости — одна транзакция, условное
	// обновление задачи отсекает гонку с закрытием аукциона
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		id, err = auctionbidstore.NewInstance(tx).Create(bid)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения ставки")
		}
		updMap := map[string]interface{}{
			"auction_has_bids": true,
		}
		switch rec.Mode {
		case models.TaskModeTime:
			updMap["current_time_minutes"] = current.TimeMinutes
		default:
			updMap["current_price"] = current.Money
		}
		updated, err := taskstore.NewInstance(tx).UpdateWithStatus(taskID, models.TaskStatusBacklog, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка фиксации стоимости аукциона")
		}
		if !updated {
			return models.ErrAuctionClosed
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("bid_id", id).
		Info("размещена ставка на аукцион")
	return id, nil
}

func (i impl) guard(rec dbmodels.Task, bidder dbmodels.Employee, bid dbmodels.AuctionBid, now time.Time) error {
	if rec.Status != models.TaskStatusBacklog || !rec.TaskType.IsAuctionable() {
		return models.ErrAuctionClosed
	}
	if !rec.HasAuctionWindow() || now.Before(*rec.AuctionStartAt) {
		return models.ErrNoAuctionWindow
	}
	if bidder.ID == rec.CreatorID {
		return models.ErrPermissionDenied
	}
	// администратор не участвует в торгах
	if bidder.Role.IsAdmin() {
		return models.ErrPermissionDenied
	}
	if !bidder.Grade.AtLeast(rec.MinimumGrade) {
		return models.ErrGradeTooLow
	}
	return nil
}

// bestActive лучшая из конкурирующих ставок задачи
func (i impl) bestActive(taskID string, mode models.TaskMode) (*dbmodels.AuctionBid, error) {
	bids, err := i.store.ListCompetingByTask(taskID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения ставок аукциона")
	}
	return auctionranking.SelectWinner(bids, mode), nil
}

// beatsValue ставка строго ниже текущей стоимости аукциона
func beatsValue(bid dbmodels.AuctionBid, current auctionprice.Value) bool {
	switch current.Mode {
	case models.TaskModeTime:
		return bid.ValueTimeMinutes < current.TimeMinutes
	default:
		return bid.ValueMoney.Cmp(current.Money) < 0
	}
}

func (i impl) CurrentValue(taskID string) (taskapimodels.CurrentValueView, error) {
	rec, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return taskapimodels.CurrentValueView{}, err
	}
	if rec == nil {
		return taskapimodels.CurrentValueView{}, errors.New("задача не найдена")
	}
	current, err := i.schedule.Current(*rec, time.Now())
	if err != nil {
		return taskapimodels.CurrentValueView{}, err
	}
	return taskapimodels.CurrentValueView{
		Mode:        string(current.Mode),
		Money:       current.Money,
		TimeMinutes: current.TimeMinutes,
	}, nil
}

func (i impl) ListByTask(taskID string) ([]taskapimodels.BidView, error) {
	recList, err := i.store.ListByTask(taskID)
	if err != nil {
		return nil, err
	}
	list := make([]taskapimodels.BidView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, taskapimodels.BidConvert(rec))
	}
	return list, nil
}

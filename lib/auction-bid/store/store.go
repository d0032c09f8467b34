package auctionbidstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AuctionBid) (id string, err error)
	// ListActiveByTask активные ставки задачи (без учёта роли участника)
	ListActiveByTask(taskID string) (list []dbmodels.AuctionBid, err error)
	// ListCompetingByTask активные ставки не-администраторов — участники торгов
	ListCompetingByTask(taskID string) (list []dbmodels.AuctionBid, err error)
	// ListByTask все ставки задачи, включая неактивные (история для аудита)
	ListByTask(taskID string) (list []dbmodels.AuctionBid, err error)
	DeactivateByTask(taskID string) error
	// DeactivateByBidder снимает активные ставки сотрудника на задачи в
	// бэклоге, возвращает затронутые задачи
	DeactivateByBidder(bidderID string) (taskIDs []string, err error)
	HasActiveBids(taskID string) (has bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuctionBid) (id string, err error) {
	err = i.db.
		Omit("Task").
		Omit("Bidder").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListActiveByTask(taskID string) (list []dbmodels.AuctionBid, err error) {
	list = []dbmodels.AuctionBid{}
	err = i.db.
		Where("task_id = ?", taskID).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Preload("Bidder").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCompetingByTask(taskID string) (list []dbmodels.AuctionBid, err error) {
	list = []dbmodels.AuctionBid{}
	err = i.db.
		Joins("JOIN employees ON employees.id = auction_bids.bidder_id").
		Where("auction_bids.task_id = ?", taskID).
		Where("auction_bids.is_active = ?", true).
		Where("employees.role <> ?", models.UserRoleAdmin).
		Order("auction_bids.created_at ASC").
		Preload("Bidder").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByTask(taskID string) (list []dbmodels.AuctionBid, err error) {
	list = []dbmodels.AuctionBid{}
	err = i.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Preload("Bidder").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) DeactivateByTask(taskID string) error {
	err := i.db.
		Model(&dbmodels.AuctionBid{}).
		Where("task_id = ?", taskID).
		Where("is_active = ?", true).
		Update("is_active", false).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeactivateByBidder(bidderID string) (taskIDs []string, err error) {
	taskIDs = []string{}
	err = i.db.
		Model(&dbmodels.AuctionBid{}).
		Joins("JOIN tasks ON tasks.id = auction_bids.task_id").
		Where("auction_bids.bidder_id = ?", bidderID).
		Where("auction_bids.is_active = ?", true).
		Where("tasks.status = ?", models.TaskStatusBacklog).
		Pluck("auction_bids.task_id", &taskIDs).
		Error
	if err != nil {
		return nil, err
	}
	if len(taskIDs) == 0 {
		return taskIDs, nil
	}
	err = i.db.
		Model(&dbmodels.AuctionBid{}).
		Where("bidder_id = ?", bidderID).
		Where("is_active = ?", true).
		Where("task_id IN ?", taskIDs).
		Update("is_active", false).
		Error
	if err != nil {
		return nil, err
	}
	return taskIDs, nil
}

func (i impl) HasActiveBids(taskID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.AuctionBid{}).
		Where("task_id = ?", taskID).
		Where("is_active = ?", true).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

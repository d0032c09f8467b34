package taskstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"task-exchange-backend/models"
	taskapimodels "task-exchange-backend/models/api/task"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Task) (id string, err error)
	GetByID(id string) (rec *dbmodels.Task, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateWithStatus условное обновление: выполняется только если задача
	// всё ещё в статусе current. false — запись уже изменил другой писатель.
	UpdateWithStatus(id string, current models.TaskStatus, updMap map[string]interface{}) (updated bool, err error)
	List(filter taskapimodels.TaskFilter) (list []dbmodels.Task, rowCount int64, err error)
	// CloseAuction условное закрытие аукциона: задача обновляется только
	// пока она в бэклоге, одновременно снимаются все активные ставки.
	// false — аукцион уже закрыл другой писатель.
	CloseAuction(taskID string, updMap map[string]interface{}) (closed bool, err error)
	// ListAuctionsToClose аукционы в бэклоге, чьё условие закрытия могло наступить
	ListAuctionsToClose(now time.Time) (list []dbmodels.Task, err error)
	// ListExpiredReviews задачи на проверке с истёкшим сроком
	ListExpiredReviews(now time.Time) (list []dbmodels.Task, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (id string, err error) {
	err = i.db.
		Omit("Creator").
		Omit("Executor").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Where("id = ?", id).
		Preload("Creator").
		Preload("Executor").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateWithStatus(id string, current models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return false, nil
	}
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Where("status = ?", current).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) CloseAuction(taskID string, updMap map[string]interface{}) (closed bool, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&dbmodels.Task{}).
			Where("id = ?", taskID).
			Where("status = ?", models.TaskStatusBacklog).
			Updates(updMap)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		closed = true
		return tx.
			Model(&dbmodels.AuctionBid{}).
			Where("task_id = ?", taskID).
			Where("is_active = ?", true).
			Update("is_active", false).
			Error
	})
	if err != nil {
		return false, err
	}
	return closed, nil
}

func (i impl) List(filter taskapimodels.TaskFilter) (list []dbmodels.Task, rowCount int64, err error) {
	list = []dbmodels.Task{}
	tx := i.db.Model(&dbmodels.Task{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.ExecutorID != "" {
		tx = tx.Where("executor_id = ?", filter.ExecutorID)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Creator").
		Preload("Executor").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListAuctionsToClose(now time.Time) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Where("status = ?", models.TaskStatusBacklog).
		Where("task_type <> ?", models.TaskTypeIndividual).
		Where("auction_planned_end_at IS NOT NULL").
		Where("auction_planned_end_at <= ?", now).
		Preload("Creator").
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

func (i impl) ListExpiredReviews(now time.Time) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Where("status = ?", models.TaskStatusUnderReview).
		Where("review_deadline IS NOT NULL").
		Where("review_deadline <= ?", now).
		Preload("Executor").
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

package taskfilestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	SaveFile(rec dbmodels.TaskFile) (id string, err error)
	GetByID(id string) (rec *dbmodels.TaskFile, err error)
	ListByTask(taskID string) (list []dbmodels.TaskFile, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(rec dbmodels.TaskFile) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.TaskFile, error) {
	rec := dbmodels.TaskFile{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) ListByTask(taskID string) (list []dbmodels.TaskFile, err error) {
	list = []dbmodels.TaskFile{}
	err = i.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
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

func (i impl) Delete(id string) error {
	rec := dbmodels.TaskFile{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

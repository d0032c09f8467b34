package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Division) (id string, err error)
	GetByID(id string) (rec *dbmodels.Division, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListByManagement(managementID string) (list []dbmodels.Division, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Division) (id string, err error) {
	err = i.db.
		Omit("Management").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Division, error) {
	rec := dbmodels.Division{}
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Division{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Division{
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

func (i impl) ListByManagement(managementID string) (list []dbmodels.Division, err error) {
	list = []dbmodels.Division{}
	tx := i.db.Order("name ASC")
	if managementID != "" {
		tx = tx.Where("management_id = ?", managementID)
	}
	err = tx.
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

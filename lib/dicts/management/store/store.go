package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Management) (id string, err error)
	GetByID(id string) (rec *dbmodels.Management, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListByDepartment(departmentID string) (list []dbmodels.Management, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Management) (id string, err error) {
	err = i.db.
		Omit("Department").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Management, error) {
	rec := dbmodels.Management{}
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
		Model(&dbmodels.Management{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Management{
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

func (i impl) ListByDepartment(departmentID string) (list []dbmodels.Management, err error) {
	list = []dbmodels.Management{}
	tx := i.db.Order("name ASC")
	if departmentID != "" {
		tx = tx.Where("department_id = ?", departmentID)
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

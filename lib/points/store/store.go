package pointsstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "task-exchange-backend/models/db"
)

// Журнал баллов: записи только добавляются, Update/Delete нет намеренно.
type Provider interface {
	Create(rec dbmodels.PointTransaction) (id string, err error)
	ListByEmployee(employeeID string) (list []dbmodels.PointTransaction, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.PointTransaction) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByEmployee(employeeID string) (list []dbmodels.PointTransaction, err error) {
	list = []dbmodels.PointTransaction{}
	err = i.db.
		Where("employee_id = ?", employeeID).
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

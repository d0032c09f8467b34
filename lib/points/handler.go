package pointshandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"task-exchange-backend/db"
	employeestore "task-exchange-backend/lib/employee/store"
	pointsstore "task-exchange-backend/lib/points/store"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	// AssignForTask начисление за выполнение задачи: запись в журнал,
	// пересчёт суммы баллов и грейда сотрудника. Штраф за просрочку
	// пишется отдельной записью, если он ненулевой.
	AssignForTask(employee dbmodels.Employee, task dbmodels.Task, basePoints, penaltyHours int) (assigned int, err error)
	// Adjust административная корректировка баллов
	Adjust(employeeID string, amount int, comment string) error
	ListByEmployee(employeeID string) (list []dbmodels.PointTransaction, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         pointsstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

// NewTxHandler обработчик в рамках внешней транзакции
func NewTxHandler(tx *gorm.DB) Provider {
	return impl{
		store:         pointsstore.NewInstance(tx),
		employeeStore: employeestore.NewInstance(tx),
	}
}

type impl struct {
	store         pointsstore.Provider
	employeeStore employeestore.Provider
}

func (i impl) AssignForTask(employee dbmodels.Employee, task dbmodels.Task, basePoints, penaltyHours int) (assigned int, err error) {
	logger := log.
		WithField("employee_id", employee.ID).
		WithField("task_id", task.ID)
	award := dbmodels.PointTransaction{
		EmployeeID: employee.ID,
		TaskID:     task.ID,
		Kind:       dbmodels.PointKindCompletion,
		Amount:     basePoints,
		Comment:    fmt.Sprintf("Выполнение задачи «%v»", task.Title),
	}
	if _, err = i.store.Create(award); err != nil {
		return 0, errors.Wrap(err, "ошибка записи начисления в журнал баллов")
	}
	assigned = basePoints
	if penaltyHours > 0 {
		penalty := dbmodels.PointTransaction{
			EmployeeID: employee.ID,
			TaskID:     task.ID,
			Kind:       dbmodels.PointKindPenalty,
			Amount:     -penaltyHours,
			Comment:    fmt.Sprintf("Просрочка задачи «%v» на %v раб. ч.", task.Title, penaltyHours),
		}
		if _, err = i.store.Create(penalty); err != nil {
			return 0, errors.Wrap(err, "ошибка записи штрафа в журнал баллов")
		}
		assigned -= penaltyHours
	}
	newTotal := employee.Points + assigned
	updMap := map[string]interface{}{
		"points": newTotal,
		"grade":  models.GradeByPoints(newTotal),
	}
	if err = i.employeeStore.Update(employee.ID, updMap); err != nil {
		return 0, errors.Wrap(err, "ошибка обновления баллов сотрудника")
	}
	logger.
		WithField("points", newTotal).
		Info("начислены баллы за задачу")
	return assigned, nil
}

func (i impl) Adjust(employeeID string, amount int, comment string) error {
	logger := log.WithField("employee_id", employeeID)
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return errors.New("сотрудник не найден")
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := pointsstore.NewInstance(tx)
		rec := dbmodels.PointTransaction{
			EmployeeID: employeeID,
			Kind:       dbmodels.PointKindAdjustment,
			Amount:     amount,
			Comment:    comment,
		}
		if _, err := store.Create(rec); err != nil {
			return errors.Wrap(err, "ошибка записи корректировки в журнал баллов")
		}
		newTotal := employee.Points + amount
		updMap := map[string]interface{}{
			"points": newTotal,
			"grade":  models.GradeByPoints(newTotal),
		}
		return employeestore.NewInstance(tx).Update(employeeID, updMap)
	})
	if err != nil {
		return err
	}
	logger.Info("выполнена корректировка баллов")
	return nil
}

func (i impl) ListByEmployee(employeeID string) ([]dbmodels.PointTransaction, error) {
	return i.store.ListByEmployee(employeeID)
}

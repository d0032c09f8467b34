package employeehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	auctionbidstore "task-exchange-backend/lib/auction-bid/store"
	employeestore "task-exchange-backend/lib/employee/store"
	taskstore "task-exchange-backend/lib/task/store"
	"task-exchange-backend/lib/utils/helpers"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	"task-exchange-backend/db"
	"task-exchange-backend/models"
	employeeapimodels "task-exchange-backend/models/api/employee"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(request employeeapimodels.EmployeeData) (id string, err error)
	Get(id string) (item employeeapimodels.EmployeeView, err error)
	List() (list []employeeapimodels.EmployeeView, err error)
	Update(id string, request employeeapimodels.EmployeeData) error
	// Dismiss увольнение: статус DISMISSED, снятие активных ставок
	// сотрудника с открытых аукционов
	Dismiss(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:     employeestore.NewInstance(db.DB),
		bidStore:  auctionbidstore.NewInstance(db.DB),
		taskStore: taskstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"bidStore", instance.bidStore,
		"taskStore", instance.taskStore,
	)
	Instance = instance
}

type impl struct {
	store     employeestore.Provider
	bidStore  auctionbidstore.Provider
	taskStore taskstore.Provider
}

func (i impl) Create(request employeeapimodels.EmployeeData) (id string, err error) {
	if err = request.Validate(); err != nil {
		return "", err
	}
	if request.Password == "" {
		return "", errors.New("не указан пароль")
	}
	exist, err := i.store.ExistByEmail(request.Email)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("сотрудник с такой почтой уже существует")
	}
	role := request.Role
	if role == "" {
		role = models.UserRoleEmployee
	}
	rec := dbmodels.Employee{
		Password:     helpers.HashPassword(request.Password),
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		MiddleName:   request.MiddleName,
		Email:        request.Email,
		Role:         role,
		Status:       models.EmployeeWorkingStatus,
		Grade:        models.GradeD,
		DepartmentID: request.DepartmentID,
		ManagementID: request.ManagementID,
		DivisionID:   request.DivisionID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания сотрудника")
	}
	log.
		WithField("employee_id", id).
		Info("создан сотрудник")
	return id, nil
}

func (i impl) Get(id string) (employeeapimodels.EmployeeView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	if rec == nil {
		return employeeapimodels.EmployeeView{}, errors.New("сотрудник не найден")
	}
	return employeeapimodels.EmployeeConvert(*rec), nil
}

func (i impl) List() ([]employeeapimodels.EmployeeView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, employeeapimodels.EmployeeConvert(rec))
	}
	return list, nil
}

func (i impl) Update(id string, request employeeapimodels.EmployeeData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("сотрудник не найден")
	}
	if err = request.Validate(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"first_name":    request.FirstName,
		"last_name":     request.LastName,
		"middle_name":   request.MiddleName,
		"email":         request.Email,
		"department_id": request.DepartmentID,
		"management_id": request.ManagementID,
		"division_id":   request.DivisionID,
	}
	if request.Role != "" {
		updMap["role"] = request.Role
	}
	if request.Password != "" {
		updMap["password"] = helpers.HashPassword(request.Password)
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления сотрудника")
	}
	return nil
}

func (i impl) Dismiss(id string) error {
	logger := log.WithField("employee_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("сотрудник не найден")
	}
	if !rec.IsWorking() {
		return nil
	}
	err = i.store.Update(id, map[string]interface{}{
		"status": models.EmployeeDismissedStatus,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка увольнения сотрудника")
	}
	// ставки уволенного снимаются с открытых аукционов, признак наличия
	// ставок по затронутым задачам пересчитывается
	taskIDs, err := i.bidStore.DeactivateByBidder(id)
	if err != nil {
		return errors.Wrap(err, "ошибка снятия ставок уволенного сотрудника")
	}
	for _, taskID := range taskIDs {
		has, err := i.bidStore.HasActiveBids(taskID)
		if err != nil {
			logger.
				WithError(err).
				WithField("task_id", taskID).
				Error("Ошибка пересчёта признака ставок аукциона")
			continue
		}
		if !has {
			err = i.taskStore.Update(taskID, map[string]interface{}{
				"auction_has_bids": false,
			})
			if err != nil {
				logger.
					WithError(err).
					WithField("task_id", taskID).
					Error("Ошибка сброса признака ставок аукциона")
			}
		}
	}
	logger.Info("сотрудник уволен")
	return nil
}

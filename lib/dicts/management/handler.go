package managementprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"task-exchange-backend/db"
	"task-exchange-backend/lib/dicts/management/store"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	dictapimodels "task-exchange-backend/models/api/dict"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.ManagementData) (id string, err error)
	Update(id string, request dictapimodels.ManagementData) error
	Get(id string) (item dictapimodels.ManagementView, err error)
	ListByDepartment(departmentID string) (list []dictapimodels.ManagementView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) Create(request dictapimodels.ManagementData) (id string, err error) {
	if err = request.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Management{
		Name:         request.Name,
		DepartmentID: request.DepartmentID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("management_name", rec.Name).
		WithField("rec_id", id).
		Info("создано управление")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.ManagementData) error {
	if err := request.Validate(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":          request.Name,
		"department_id": request.DepartmentID,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		Info("обновлено управление")
	return nil
}

func (i impl) Get(id string) (dictapimodels.ManagementView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.ManagementView{}, err
	}
	if rec == nil {
		return dictapimodels.ManagementView{}, errors.New("управление не найдено")
	}
	return dictapimodels.ManagementConvert(*rec), nil
}

func (i impl) ListByDepartment(departmentID string) ([]dictapimodels.ManagementView, error) {
	recList, err := i.store.ListByDepartment(departmentID)
	if err != nil {
		return nil, err
	}
	list := make([]dictapimodels.ManagementView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.ManagementConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	err := i.store.Delete(id)
	if err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		Info("удалено управление")
	return nil
}

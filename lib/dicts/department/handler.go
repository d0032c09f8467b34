package departmentprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"task-exchange-backend/db"
	"task-exchange-backend/lib/dicts/department/store"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	dictapimodels "task-exchange-backend/models/api/dict"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.DepartmentData) (id string, err error)
	Update(id string, request dictapimodels.DepartmentData) error
	Get(id string) (item dictapimodels.DepartmentView, err error)
	List() (list []dictapimodels.DepartmentView, err error)
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

func (i impl) Create(request dictapimodels.DepartmentData) (id string, err error) {
	if err = request.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Department{
		Name:       request.Name,
		DirectorID: request.DirectorID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("department_name", rec.Name).
		WithField("rec_id", id).
		Info("создан департамент")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DepartmentData) error {
	if err := request.Validate(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":        request.Name,
		"director_id": request.DirectorID,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		Info("обновлён департамент")
	return nil
}

func (i impl) Get(id string) (dictapimodels.DepartmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, errors.New("департамент не найден")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() ([]dictapimodels.DepartmentView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DepartmentConvert(rec))
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
		Info("удалён департамент")
	return nil
}

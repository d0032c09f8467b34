package divisionprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"task-exchange-backend/db"
	"task-exchange-backend/lib/dicts/division/store"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	dictapimodels "task-exchange-backend/models/api/dict"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.DivisionData) (id string, err error)
	Update(id string, request dictapimodels.DivisionData) error
	Get(id string) (item dictapimodels.DivisionView, err error)
	ListByManagement(managementID string) (list []dictapimodels.DivisionView, err error)
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

func (i impl) Create(request dictapimodels.DivisionData) (id string, err error) {
	if err = request.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Division{
		Name:         request.Name,
		ManagementID: request.ManagementID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("division_name", rec.Name).
		WithField("rec_id", id).
		Info("создан отдел")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DivisionData) error {
	if err := request.Validate(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":          request.Name,
		"management_id": request.ManagementID,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		Info("обновлён отдел")
	return nil
}

func (i impl) Get(id string) (dictapimodels.DivisionView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DivisionView{}, err
	}
	if rec == nil {
		return dictapimodels.DivisionView{}, errors.New("отдел не найден")
	}
	return dictapimodels.DivisionConvert(*rec), nil
}

func (i impl) ListByManagement(managementID string) ([]dictapimodels.DivisionView, error) {
	recList, err := i.store.ListByManagement(managementID)
	if err != nil {
		return nil, err
	}
	list := make([]dictapimodels.DivisionView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DivisionConvert(rec))
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
		Info("удалён отдел")
	return nil
}

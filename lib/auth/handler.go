package authhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	employeestore "task-exchange-backend/lib/employee/store"
	authutils "task-exchange-backend/lib/utils/auth-utils"
	"task-exchange-backend/lib/utils/helpers"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	"task-exchange-backend/db"
	authapimodels "task-exchange-backend/models/api/auth"
)

type Provider interface {
	Login(request authapimodels.LoginData) (view authapimodels.LoginView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		employeeStore: employeestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	employeeStore employeestore.Provider
}

func (i impl) Login(request authapimodels.LoginData) (authapimodels.LoginView, error) {
	logger := log.WithField("email", request.Email)
	if err := request.Validate(); err != nil {
		return authapimodels.LoginView{}, err
	}
	rec, err := i.employeeStore.GetByEmail(request.Email)
	if err != nil {
		return authapimodels.LoginView{}, err
	}
	if rec == nil || rec.Password != helpers.HashPassword(request.Password) {
		return authapimodels.LoginView{}, errors.New("неверная почта или пароль")
	}
	if !rec.IsWorking() {
		return authapimodels.LoginView{}, errors.New("сотрудник уволен")
	}
	token, err := authutils.GetToken(rec.ID, rec.GetFullName(), rec.Role)
	if err != nil {
		return authapimodels.LoginView{}, errors.Wrap(err, "ошибка выпуска токена")
	}
	updMap := map[string]interface{}{
		"last_login": time.Now(),
	}
	if err = i.employeeStore.Update(rec.ID, updMap); err != nil {
		logger.WithError(err).Error("Ошибка обновления времени входа")
	}
	logger.Info("выполнен вход")
	return authapimodels.LoginView{
		Token:    token,
		UserID:   rec.ID,
		FullName: rec.GetFullName(),
		Role:     string(rec.Role),
	}, nil
}

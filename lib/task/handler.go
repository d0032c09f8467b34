package taskhandler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"task-exchange-backend/config"
	auctionbidstore "task-exchange-backend/lib/auction-bid/store"
	employeestore "task-exchange-backend/lib/employee/store"
	pointshandler "task-exchange-backend/lib/points"
	taskstore "task-exchange-backend/lib/task/store"
	"task-exchange-backend/lib/smtp"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	"task-exchange-backend/lib/utils/helpers"
	"task-exchange-backend/lib/worktime"
	"task-exchange-backend/db"
	"task-exchange-backend/models"
	taskapimodels "task-exchange-backend/models/api/task"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	Create(creatorID string, request taskapimodels.TaskData) (id string, err error)
	Get(id string) (item taskapimodels.TaskView, err error)
	List(filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, rowCount int64, err error)
	// Assign назначение исполнителя задачи в бэклоге (директор/администратор)
	Assign(actorID, taskID, executorID string) error
	// TakeInProgress перевод BACKLOG → IN_PROGRESS
	TakeInProgress(actorID, taskID string) error
	// SendToReview перевод IN_PROGRESS → UNDER_REVIEW, назначает срок проверки
	SendToReview(actorID, taskID string) error
	// ReturnToWork перевод UNDER_REVIEW → IN_PROGRESS с обязательным комментарием
	ReturnToWork(actorID, taskID, comment string) error
	// Complete перевод UNDER_REVIEW → DONE с начислением баллов
	Complete(actorID, taskID string) error
	// ExpireOverdueReviews автоматический возврат задач с истёкшим сроком
	// проверки, вызывается фоновой задачей
	ExpireOverdueReviews(ctx context.Context)
}

var Instance Provider

func NewHandler(cal worktime.Calendar) {
	instance := impl{
		store:         taskstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		cal:           cal,
		reviewHours:   float64(config.Conf.Work.ReviewPeriodHours),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         taskstore.Provider
	employeeStore employeestore.Provider
	cal           worktime.Calendar
	reviewHours   float64
}

func (i impl) getLogger(taskID, actorID string) *log.Entry {
	logger := log.
		WithField("task_id", taskID).
		WithField("user_id", actorID)
	return logger
}

func (i impl) Create(creatorID string, request taskapimodels.TaskData) (id string, err error) {
	logger := log.WithField("user_id", creatorID)
	minimumGrade := request.MinimumGrade
	if minimumGrade == "" {
		minimumGrade = models.GradeD
	}
	rec := dbmodels.Task{
		Title:        request.Title,
		Description:  request.Description,
		TaskType:     request.TaskType,
		Mode:         request.Mode,
		DepartmentID: request.DepartmentID,
		ManagementID: request.ManagementID,
		DivisionID:   request.DivisionID,
		CreatorID:    creatorID,
		MinimumGrade: minimumGrade,
		Deadline:     request.Deadline,
	}
	switch request.Mode {
	case models.TaskModeTime:
		rec.BaseTimeMinutes = request.BaseTimeMinutes
	default:
		rec.BasePrice = request.BasePrice
	}
	if request.TaskType.IsAuctionable() {
		// аукционная задача стартует в бэклоге с открытым окном
		rec.Status = models.TaskStatusBacklog
		startAt := time.Now()
		if request.AuctionStartAt != nil {
			startAt = *request.AuctionStartAt
		}
		rec.AuctionStartAt = &startAt
		rec.AuctionPlannedEndAt = request.AuctionPlannedEndAt
	} else {
		// индивидуальная задача не торгуется и сразу в работе
		executor, err := i.employeeStore.GetByID(request.ExecutorID)
		if err != nil {
			return "", err
		}
		if executor == nil || !executor.IsWorking() {
			return "", errors.New("исполнитель не найден в справочнике сотрудников")
		}
		rec.Status = models.TaskStatusInProgress
		rec.ExecutorID = request.ExecutorID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания задачи")
	}
	logger.
		WithField("task_id", id).
		WithField("task_type", rec.TaskType).
		Info("создана задача")
	return id, nil
}

func (i impl) Get(id string) (taskapimodels.TaskView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	if rec == nil {
		return taskapimodels.TaskView{}, errors.New("задача не найдена")
	}
	return taskapimodels.TaskConvert(*rec), nil
}

func (i impl) List(filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]taskapimodels.TaskView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, taskapimodels.TaskConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Assign(actorID, taskID, executorID string) error {
	logger := i.getLogger(taskID, actorID)
	actor, rec, err := i.loadActorAndTask(actorID, taskID)
	if err != nil {
		return err
	}
	if !canManage(*actor, *rec) {
		return models.ErrPermissionDenied
	}
	if rec.Status != models.TaskStatusBacklog {
		return models.ErrInvalidTransition
	}
	executor, err := i.employeeStore.GetByID(executorID)
	if err != nil {
		return err
	}
	if executor == nil || !executor.IsWorking() {
		return errors.New("исполнитель не найден в справочнике сотрудников")
	}
	updMap := map[string]interface{}{
		"executor_id": executorID,
	}
	if err = i.store.Update(taskID, updMap); err != nil {
		return errors.Wrap(err, "ошибка назначения исполнителя")
	}
	logger.WithField("executor_id", executorID).Info("назначен исполнитель задачи")
	return nil
}

func (i impl) TakeInProgress(actorID, taskID string) error {
	logger := i.getLogger(taskID, actorID)
	actor, rec, err := i.loadActorAndTask(actorID, taskID)
	if err != nil {
		return err
	}
	if err = GuardTransition(*rec, *actor, models.TaskStatusInProgress, ""); err != nil {
		return err
	}
	// перевод статуса и снятие ставок — одна транзакция: задача не может
	// покинуть бэклог, оставив активные ставки
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		updated, err := taskstore.NewInstance(tx).UpdateWithStatus(taskID, models.TaskStatusBacklog, map[string]interface{}{
			"status":           models.TaskStatusInProgress,
			"auction_has_bids": false,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка перевода задачи в работу")
		}
		if !updated {
			return models.ErrInvalidTransition
		}
		return auctionbidstore.NewInstance(tx).DeactivateByTask(taskID)
	})
	if err != nil {
		return err
	}
	logger.Info("задача переведена в работу")
	return nil
}

func (i impl) SendToReview(actorID, taskID string) error {
	logger := i.getLogger(taskID, actorID)
	actor, rec, err := i.loadActorAndTask(actorID, taskID)
	if err != nil {
		return err
	}
	if err = GuardTransition(*rec, *actor, models.TaskStatusUnderReview, ""); err != nil {
		return err
	}
	reviewDeadline := i.cal.AddWorkingHours(time.Now(), i.reviewHours)
	updated, err := i.store.UpdateWithStatus(taskID, models.TaskStatusInProgress, map[string]interface{}{
		"status":          models.TaskStatusUnderReview,
		"review_deadline": reviewDeadline,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка отправки задачи на проверку")
	}
	if !updated {
		return models.ErrInvalidTransition
	}
	logger.
		WithField("review_deadline", reviewDeadline).
		Info("задача отправлена на проверку")
	return nil
}

func (i impl) ReturnToWork(actorID, taskID, comment string) error {
	logger := i.getLogger(taskID, actorID)
	actor, rec, err := i.loadActorAndTask(actorID, taskID)
	if err != nil {
		return err
	}
	if err = GuardTransition(*rec, *actor, models.TaskStatusInProgress, comment); err != nil {
		return err
	}
	updated, err := i.store.UpdateWithStatus(taskID, models.TaskStatusUnderReview, map[string]interface{}{
		"status":          models.TaskStatusInProgress,
		"review_deadline": nil,
		"return_comment":  comment,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка возврата задачи на доработку")
	}
	if !updated {
		return models.ErrInvalidTransition
	}
	logger.Info("задача возвращена на доработку")
	i.notifyExecutor(*rec, "Задача возвращена на доработку",
		fmt.Sprintf("Задача «%v» возвращена на доработку. Причина: %v", rec.Title, comment))
	return nil
}

func (i impl) Complete(actorID, taskID string) error {
	logger := i.getLogger(taskID, actorID)
	actor, rec, err := i.loadActorAndTask(actorID, taskID)
	if err != nil {
		return err
	}
	if err = GuardTransition(*rec, *actor, models.TaskStatusDone, ""); err != nil {
		return err
	}
	executor, err := i.employeeStore.GetByID(rec.ExecutorID)
	if err != nil {
		return err
	}
	if executor == nil {
		return errors.New("исполнитель задачи не найден")
	}
	now := time.Now()
	basePoints := models.BasePointsByMinGrade(rec.MinimumGrade)
	penaltyHours := 0
	if rec.Deadline != nil && now.After(*rec.Deadline) {
		penaltyHours = int(math.Ceil(i.cal.DiffWorkingHours(*rec.Deadline, now)))
	}
	assigned := basePoints - penaltyHours
	// завершение и запись в журнал баллов — одна логическая транзакция
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := taskstore.NewInstance(tx)
		updated, err := store.UpdateWithStatus(taskID, models.TaskStatusUnderReview, map[string]interface{}{
			"status":          models.TaskStatusDone,
			"done_at":         now,
			"review_deadline": nil,
			"assigned_points": assigned,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка завершения задачи")
		}
		if !updated {
			return models.ErrInvalidTransition
		}
		_, err = pointshandler.NewTxHandler(tx).AssignForTask(*executor, *rec, basePoints, penaltyHours)
		return err
	})
	if err != nil {
		return err
	}
	logger.
		WithField("assigned_points", assigned).
		Info("задача завершена")
	i.notifyExecutor(*rec, "Задача принята",
		fmt.Sprintf("Задача «%v» принята. Начислено баллов: %v", rec.Title, assigned))
	return nil
}

func (i impl) ExpireOverdueReviews(ctx context.Context) {
	logger := log.WithField("job", "review_expire")
	list, err := i.store.ListExpiredReviews(time.Now())
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка задач с истёкшим сроком проверки")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		// автоматический возврат без комментария
		updated, err := i.store.UpdateWithStatus(rec.ID, models.TaskStatusUnderReview, map[string]interface{}{
			"status":          models.TaskStatusInProgress,
			"review_deadline": nil,
		})
		if err != nil {
			logger.
				WithError(err).
				WithField("task_id", rec.ID).
				Error("Ошибка автоматического возврата задачи на доработку")
			continue
		}
		if !updated {
			// задачу уже обработал другой писатель
			continue
		}
		logger.WithField("task_id", rec.ID).Info("задача возвращена на доработку по истечении срока проверки")
		i.notifyExecutor(rec, "Задача возвращена на доработку",
			fmt.Sprintf("Срок проверки задачи «%v» истёк, задача автоматически возвращена в работу", rec.Title))
	}
}

func (i impl) loadActorAndTask(actorID, taskID string) (*dbmodels.Employee, *dbmodels.Task, error) {
	actor, err := i.employeeStore.GetByID(actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, errors.New("пользователь не найден")
	}
	rec, err := i.store.GetByID(taskID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("задача не найдена")
	}
	return actor, rec, nil
}

func (i impl) notifyExecutor(rec dbmodels.Task, subject, message string) {
	if smtp.Instance == nil || rec.ExecutorID == "" {
		return
	}
	go func() {
		executor, err := i.employeeStore.GetByID(rec.ExecutorID)
		if err != nil || executor == nil || executor.Email == "" {
			return
		}
		_ = smtp.Instance.SendEMail(config.Conf.Smtp.From, executor.Email, message, subject)
	}()
}

// canManage директор распоряжается задачами своего департамента,
// администратор — любыми
func canManage(actor dbmodels.Employee, rec dbmodels.Task) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	return actor.Role.IsDirector() && actor.DepartmentID == rec.DepartmentID
}

// GuardTransition проверка допустимости перехода статуса до каких-либо
// записей в БД. Возвращает причину отказа.
func GuardTransition(rec dbmodels.Task, actor dbmodels.Employee, to models.TaskStatus, comment string) error {
	switch {
	case rec.Status == models.TaskStatusBacklog && to == models.TaskStatusInProgress:
		if rec.ExecutorID == "" {
			return models.ErrExecutorRequired
		}
		if actor.ID != rec.ExecutorID && !canManage(actor, rec) {
			return models.ErrPermissionDenied
		}
		return nil
	case rec.Status == models.TaskStatusInProgress && to == models.TaskStatusUnderReview:
		if actor.ID != rec.ExecutorID && !actor.Role.IsAdmin() {
			return models.ErrPermissionDenied
		}
		return nil
	case rec.Status == models.TaskStatusUnderReview && to == models.TaskStatusInProgress:
		if actor.ID != rec.CreatorID && !canManage(actor, rec) {
			return models.ErrPermissionDenied
		}
		if comment == "" {
			return models.ErrCommentRequired
		}
		return nil
	case rec.Status == models.TaskStatusUnderReview && to == models.TaskStatusDone:
		if !canManage(actor, rec) {
			return models.ErrPermissionDenied
		}
		return nil
	}
	return models.ErrInvalidTransition
}

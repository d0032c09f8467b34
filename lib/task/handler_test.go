package taskhandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"task-exchange-backend/lib/worktime"
	"task-exchange-backend/models"
	taskapimodels "task-exchange-backend/models/api/task"
	dbmodels "task-exchange-backend/models/db"
)

func makeTask(status models.TaskStatus) dbmodels.Task {
	return dbmodels.Task{
		BaseModel:    dbmodels.BaseModel{ID: "task-1"},
		Status:       status,
		TaskType:     models.TaskTypeUnit,
		DepartmentID: "dep-1",
		CreatorID:    "creator-1",
		ExecutorID:   "executor-1",
	}
}

func makeActor(id string, role models.UserRole, departmentID string) dbmodels.Employee {
	return dbmodels.Employee{
		BaseModel:    dbmodels.BaseModel{ID: id},
		Role:         role,
		Status:       models.EmployeeWorkingStatus,
		DepartmentID: departmentID,
	}
}

func TestGuardTransition(t *testing.T) {
	executor := makeActor("executor-1", models.UserRoleEmployee, "dep-1")
	creator := makeActor("creator-1", models.UserRoleEmployee, "dep-1")
	director := makeActor("director-1", models.UserRoleDirector, "dep-1")
	otherDirector := makeActor("director-2", models.UserRoleDirector, "dep-2")
	admin := makeActor("admin-1", models.UserRoleAdmin, "dep-9")
	stranger := makeActor("emp-9", models.UserRoleEmployee, "dep-1")

	t.Run("исполнитель берёт задачу в работу", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusBacklog), executor, models.TaskStatusInProgress, "")
		require.NoError(t, err)
	})

	t.Run("без исполнителя задача не переводится в работу", func(t *testing.T) {
		rec := makeTask(models.TaskStatusBacklog)
		rec.ExecutorID = ""
		err := GuardTransition(rec, director, models.TaskStatusInProgress, "")
		require.ErrorIs(t, err, models.ErrExecutorRequired)
	})

	t.Run("посторонний сотрудник не берёт чужую задачу", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusBacklog), stranger, models.TaskStatusInProgress, "")
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("исполнитель отправляет на проверку", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusInProgress), executor, models.TaskStatusUnderReview, "")
		require.NoError(t, err)
	})

	t.Run("на проверку отправляет только исполнитель", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusInProgress), stranger, models.TaskStatusUnderReview, "")
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("возврат с проверки требует комментария", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusUnderReview), creator, models.TaskStatusInProgress, "")
		require.ErrorIs(t, err, models.ErrCommentRequired)

		err = GuardTransition(makeTask(models.TaskStatusUnderReview), creator, models.TaskStatusInProgress, "исправить отчёт")
		require.NoError(t, err)
	})

	t.Run("принимает директор своего департамента", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusUnderReview), director, models.TaskStatusDone, "")
		require.NoError(t, err)
	})

	t.Run("директор чужого департамента не принимает", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusUnderReview), otherDirector, models.TaskStatusDone, "")
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("администратор принимает любую задачу", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusUnderReview), admin, models.TaskStatusDone, "")
		require.NoError(t, err)
	})

	t.Run("исполнитель не принимает свою работу", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusUnderReview), executor, models.TaskStatusDone, "")
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("недопустимые переходы отклоняются", func(t *testing.T) {
		err := GuardTransition(makeTask(models.TaskStatusBacklog), admin, models.TaskStatusDone, "")
		require.ErrorIs(t, err, models.ErrInvalidTransition)

		err = GuardTransition(makeTask(models.TaskStatusDone), admin, models.TaskStatusInProgress, "")
		require.ErrorIs(t, err, models.ErrInvalidTransition)

		err = GuardTransition(makeTask(models.TaskStatusInProgress), admin, models.TaskStatusBacklog, "")
		require.ErrorIs(t, err, models.ErrInvalidTransition)
	})
}

type fakeTaskStore struct {
	tasks map[string]dbmodels.Task
	// снимки для выборки просроченных проверок, могут отставать от tasks
	expired    []dbmodels.Task
	applied    int
	lastUpdMap map[string]interface{}
}

func (f *fakeTaskStore) Create(rec dbmodels.Task) (string, error) { return rec.ID, nil }

func (f *fakeTaskStore) GetByID(id string) (*dbmodels.Task, error) {
	rec, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTaskStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeTaskStore) UpdateWithStatus(id string, current models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.tasks[id]
	if !ok || rec.Status != current {
		return false, nil
	}
	f.applied++
	f.lastUpdMap = updMap
	if status, ok := updMap["status"].(models.TaskStatus); ok {
		rec.Status = status
	}
	if deadline, exist := updMap["review_deadline"]; exist {
		if value, ok := deadline.(time.Time); ok {
			rec.ReviewDeadline = &value
		} else {
			rec.ReviewDeadline = nil
		}
	}
	f.tasks[id] = rec
	return true, nil
}

func (f *fakeTaskStore) List(filter taskapimodels.TaskFilter) ([]dbmodels.Task, int64, error) {
	return nil, 0, nil
}

func (f *fakeTaskStore) CloseAuction(taskID string, updMap map[string]interface{}) (bool, error) {
	return false, nil
}

func (f *fakeTaskStore) ListAuctionsToClose(now time.Time) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) ListExpiredReviews(now time.Time) ([]dbmodels.Task, error) {
	list := []dbmodels.Task{}
	for _, rec := range f.expired {
		if rec.ReviewDeadline != nil && !rec.ReviewDeadline.After(now) {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeEmployeeStore struct {
	employees map[string]dbmodels.Employee
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) { return rec.ID, nil }

func (f *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	rec, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeEmployeeStore) GetByEmail(email string) (*dbmodels.Employee, error) { return nil, nil }

func (f *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeEmployeeStore) List() ([]dbmodels.Employee, error) { return nil, nil }

func (f *fakeEmployeeStore) ExistByEmail(email string) (bool, error) { return false, nil }

func newTestHandler(store *fakeTaskStore, employeeStore *fakeEmployeeStore) impl {
	return impl{
		store:         store,
		employeeStore: employeeStore,
		cal:           worktime.NewCalendar(3, 9, 18),
		reviewHours:   48,
	}
}

func underReviewTask(id string, deadline *time.Time) dbmodels.Task {
	rec := makeTask(models.TaskStatusUnderReview)
	rec.ID = id
	rec.Title = "Подготовить отчёт"
	rec.ReviewDeadline = deadline
	return rec
}

func TestExpireOverdueReviews(t *testing.T) {
	deadline := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	t.Run("просроченная проверка возвращается в работу без комментария", func(t *testing.T) {
		rec := underReviewTask("task-1", &deadline)
		store := &fakeTaskStore{
			tasks:   map[string]dbmodels.Task{"task-1": rec},
			expired: []dbmodels.Task{rec},
		}
		handler := newTestHandler(store, &fakeEmployeeStore{})

		handler.ExpireOverdueReviews(context.Background())
		require.Equal(t, 1, store.applied)
		require.Equal(t, models.TaskStatusInProgress, store.tasks["task-1"].Status)
		require.Nil(t, store.tasks["task-1"].ReviewDeadline)
		require.NotContains(t, store.lastUpdMap, "return_comment")
	})

	t.Run("задачу уже обработал другой писатель — no-op", func(t *testing.T) {
		snapshot := underReviewTask("task-1", &deadline)
		current := snapshot
		current.Status = models.TaskStatusInProgress
		// выборка вернула снимок, а задачу уже вернул на доработку
		// постановщик
		store := &fakeTaskStore{
			tasks:   map[string]dbmodels.Task{"task-1": current},
			expired: []dbmodels.Task{snapshot},
		}
		handler := newTestHandler(store, &fakeEmployeeStore{})

		handler.ExpireOverdueReviews(context.Background())
		require.Equal(t, 0, store.applied)
		require.Equal(t, models.TaskStatusInProgress, store.tasks["task-1"].Status)
	})
}

func TestSendToReview(t *testing.T) {
	executor := makeActor("executor-1", models.UserRoleEmployee, "dep-1")

	t.Run("назначается срок проверки в рабочих часах", func(t *testing.T) {
		store := &fakeTaskStore{
			tasks: map[string]dbmodels.Task{"task-1": makeTask(models.TaskStatusInProgress)},
		}
		employeeStore := &fakeEmployeeStore{
			employees: map[string]dbmodels.Employee{"executor-1": executor},
		}
		handler := newTestHandler(store, employeeStore)

		started := time.Now()
		err := handler.SendToReview("executor-1", "task-1")
		require.NoError(t, err)
		require.Equal(t, models.TaskStatusUnderReview, store.tasks["task-1"].Status)
		deadline := store.tasks["task-1"].ReviewDeadline
		require.NotNil(t, deadline)
		require.True(t, deadline.After(started))
		require.InDelta(t, 48, handler.cal.DiffWorkingHours(started, *deadline), 0.1)
	})

	t.Run("повторная отправка на проверку отклоняется", func(t *testing.T) {
		store := &fakeTaskStore{
			tasks: map[string]dbmodels.Task{"task-1": makeTask(models.TaskStatusInProgress)},
		}
		employeeStore := &fakeEmployeeStore{
			employees: map[string]dbmodels.Employee{"executor-1": executor},
		}
		handler := newTestHandler(store, employeeStore)

		require.NoError(t, handler.SendToReview("executor-1", "task-1"))
		// повторная отправка: задача уже на проверке
		err := handler.SendToReview("executor-1", "task-1")
		require.ErrorIs(t, err, models.ErrInvalidTransition)
	})
}

package taskapimodels

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"task-exchange-backend/models"
	apimodels "task-exchange-backend/models/api"
	dbmodels "task-exchange-backend/models/db"
)

type TaskData struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TaskType     models.TaskType `json:"task_type"`
	Mode         models.TaskMode `json:"mode"`
	DepartmentID string          `json:"department_id"`
	ManagementID string          `json:"management_id"`
	DivisionID   string          `json:"division_id"`
	ExecutorID   string          `json:"executor_id"` // обязателен для индивидуальной задачи
	MinimumGrade models.Grade    `json:"minimum_grade"`
	Deadline     *time.Time      `json:"deadline"`

	AuctionStartAt      *time.Time      `json:"auction_start_at"`
	AuctionPlannedEndAt *time.Time      `json:"auction_planned_end_at"`
	BasePrice           decimal.Decimal `json:"base_price"`
	BaseTimeMinutes     int             `json:"base_time_minutes"`
}

func (r TaskData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название задачи")
	}
	if r.DepartmentID == "" {
		return errors.New("не указан департамент")
	}
	switch r.TaskType {
	case models.TaskTypeIndividual:
		if r.ExecutorID == "" {
			return errors.New("для индивидуальной задачи не указан исполнитель")
		}
	case models.TaskTypeUnit, models.TaskTypeDepartment:
		if r.AuctionPlannedEndAt == nil {
			return errors.New("не указано плановое окончание аукциона")
		}
	default:
		return errors.New("не указан тип задачи")
	}
	switch r.Mode {
	case models.TaskModeMoney:
		if !r.BasePrice.IsPositive() {
			return errors.New("не указана базовая стоимость задачи")
		}
	case models.TaskModeTime:
		if r.BaseTimeMinutes <= 0 {
			return errors.New("не указано базовое время задачи")
		}
	default:
		return errors.New("не указан режим оценки задачи")
	}
	return nil
}

type TaskView struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	StatusName   string          `json:"status_name"`
	TaskType     string          `json:"task_type"`
	Mode         string          `json:"mode"`
	DepartmentID string          `json:"department_id"`
	ManagementID string          `json:"management_id,omitempty"`
	DivisionID   string          `json:"division_id,omitempty"`
	CreatorID    string          `json:"creator_id"`
	CreatorName  string          `json:"creator_name,omitempty"`
	ExecutorID   string          `json:"executor_id,omitempty"`
	ExecutorName string          `json:"executor_name,omitempty"`
	MinimumGrade string          `json:"minimum_grade"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	AuctionStartAt      *time.Time      `json:"auction_start_at,omitempty"`
	AuctionPlannedEndAt *time.Time      `json:"auction_planned_end_at,omitempty"`
	AuctionEndAt        *time.Time      `json:"auction_end_at,omitempty"`
	AuctionHasBids      bool            `json:"auction_has_bids"`
	BasePrice           decimal.Decimal `json:"base_price,omitempty"`
	BaseTimeMinutes     int             `json:"base_time_minutes,omitempty"`
	CurrentPrice        decimal.Decimal `json:"current_price,omitempty"`
	CurrentTimeMinutes  int             `json:"current_time_minutes,omitempty"`
	EarnedMoney         decimal.Decimal `json:"earned_money,omitempty"`
	EarnedTimeMinutes   int             `json:"earned_time_minutes,omitempty"`

	ReviewDeadline *time.Time `json:"review_deadline,omitempty"`
	DoneAt         *time.Time `json:"done_at,omitempty"`
	AssignedPoints int        `json:"assigned_points,omitempty"`
}

func TaskConvert(rec dbmodels.Task) TaskView {
	view := TaskView{
		ID:                  rec.ID,
		Title:               rec.Title,
		Description:         rec.Description,
		Status:              string(rec.Status),
		StatusName:          rec.Status.ToHuman(),
		TaskType:            string(rec.TaskType),
		Mode:                string(rec.Mode),
		DepartmentID:        rec.DepartmentID,
		ManagementID:        rec.ManagementID,
		DivisionID:          rec.DivisionID,
		CreatorID:           rec.CreatorID,
		ExecutorID:          rec.ExecutorID,
		MinimumGrade:        string(rec.MinimumGrade),
		Deadline:            rec.Deadline,
		CreatedAt:           rec.CreatedAt,
		AuctionStartAt:      rec.AuctionStartAt,
		AuctionPlannedEndAt: rec.AuctionPlannedEndAt,
		AuctionEndAt:        rec.AuctionEndAt,
		AuctionHasBids:      rec.AuctionHasBids,
		BasePrice:           rec.BasePrice,
		BaseTimeMinutes:     rec.BaseTimeMinutes,
		CurrentPrice:        rec.CurrentPrice,
		CurrentTimeMinutes:  rec.CurrentTimeMinutes,
		EarnedMoney:         rec.EarnedMoney,
		EarnedTimeMinutes:   rec.EarnedTimeMinutes,
		ReviewDeadline:      rec.ReviewDeadline,
		DoneAt:              rec.DoneAt,
		AssignedPoints:      rec.AssignedPoints,
	}
	if rec.Creator != nil {
		view.CreatorName = rec.Creator.GetFullName()
	}
	if rec.Executor != nil {
		view.ExecutorName = rec.Executor.GetFullName()
	}
	return view
}

type TaskFilter struct {
	Status       models.TaskStatus `json:"status"`
	DepartmentID string            `json:"department_id"`
	ExecutorID   string            `json:"executor_id"`
	apimodels.Pagination
}

type ReturnData struct {
	Comment string `json:"comment"`
}

type AssignData struct {
	ExecutorID string `json:"executor_id"`
}

func (r AssignData) Validate() error {
	if r.ExecutorID == "" {
		return errors.New("не указан исполнитель")
	}
	return nil
}

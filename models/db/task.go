package dbmodels

import (
	"time"

	"github.com/shopspring/decimal"
	"task-exchange-backend/models"
)

// Task единица работы. Денежные и временные поля заполняются
// взаимоисключающе в зависимости от Mode.
type Task struct {
	BaseModel
	Title       string `gorm:"type:varchar(255)"`
	Description string
	Status      models.TaskStatus `gorm:"type:varchar(20);index"`
	TaskType    models.TaskType   `gorm:"type:varchar(20)"`
	Mode        models.TaskMode   `gorm:"type:varchar(10)"`

	DepartmentID string `gorm:"type:varchar(36)"`
	ManagementID string `gorm:"type:varchar(36)"`
	DivisionID   string `gorm:"type:varchar(36)"`

	CreatorID  string    `gorm:"type:varchar(36)"`
	Creator    *Employee `gorm:"foreignKey:CreatorID"`
	ExecutorID string    `gorm:"type:varchar(36)"`
	Executor   *Employee `gorm:"foreignKey:ExecutorID"`

	MinimumGrade models.Grade `gorm:"type:varchar(1)"`
	Deadline     *time.Time

	AuctionStartAt      *time.Time
	AuctionPlannedEndAt *time.Time
	AuctionEndAt        *time.Time
	AuctionHasBids      bool

	BasePrice       decimal.Decimal `gorm:"type:numeric(12,2)"`
	BaseTimeMinutes int
	// CurrentPrice/CurrentTimeMinutes — последняя рассчитанная стоимость,
	// фиксируется при появлении ставки
	CurrentPrice       decimal.Decimal `gorm:"type:numeric(12,2)"`
	CurrentTimeMinutes int

	EarnedMoney       decimal.Decimal `gorm:"type:numeric(12,2)"`
	EarnedTimeMinutes int

	ReviewDeadline *time.Time
	// ReturnComment причина последнего возврата с проверки
	ReturnComment  string
	DoneAt         *time.Time
	AssignedPoints int
}

func (t Task) HasAuctionWindow() bool {
	return t.AuctionStartAt != nil && t.AuctionPlannedEndAt != nil
}

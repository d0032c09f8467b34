package dbmodels

import (
	"github.com/shopspring/decimal"
	"task-exchange-backend/models"
)

// AuctionBid ставка сотрудника на задачу. После создания не изменяется,
// кроме снятия флага IsActive (увольнение сотрудника, уход задачи из бэклога).
// Грейд и баллы участника фиксируются на момент ставки.
type AuctionBid struct {
	BaseModel
	TaskID string `gorm:"type:varchar(36);index"`
	Task   *Task  `gorm:"foreignKey:TaskID"`

	BidderID     string    `gorm:"type:varchar(36);index"`
	Bidder       *Employee `gorm:"foreignKey:BidderID"`
	BidderGrade  models.Grade
	BidderPoints int

	ValueMoney       decimal.Decimal `gorm:"type:numeric(12,2)"`
	ValueTimeMinutes int

	IsActive bool `gorm:"index"`
}

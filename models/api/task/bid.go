package taskapimodels

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

type BidData struct {
	ValueMoney       decimal.Decimal `json:"value_money"`
	ValueTimeMinutes int             `json:"value_time_minutes"`
}

func (r BidData) Validate(mode models.TaskMode) error {
	switch mode {
	case models.TaskModeMoney:
		if !r.ValueMoney.IsPositive() {
			return errors.New("не указана сумма ставки")
		}
	case models.TaskModeTime:
		if r.ValueTimeMinutes <= 0 {
			return errors.New("не указано время ставки")
		}
	}
	return nil
}

type BidView struct {
	ID               string          `json:"id"`
	TaskID           string          `json:"task_id"`
	BidderID         string          `json:"bidder_id"`
	BidderName       string          `json:"bidder_name,omitempty"`
	BidderGrade      string          `json:"bidder_grade"`
	BidderPoints     int             `json:"bidder_points"`
	ValueMoney       decimal.Decimal `json:"value_money,omitempty"`
	ValueTimeMinutes int             `json:"value_time_minutes,omitempty"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
}

func BidConvert(rec dbmodels.AuctionBid) BidView {
	view := BidView{
		ID:               rec.ID,
		TaskID:           rec.TaskID,
		BidderID:         rec.BidderID,
		BidderGrade:      string(rec.BidderGrade),
		BidderPoints:     rec.BidderPoints,
		ValueMoney:       rec.ValueMoney,
		ValueTimeMinutes: rec.ValueTimeMinutes,
		IsActive:         rec.IsActive,
		CreatedAt:        rec.CreatedAt,
	}
	if rec.Bidder != nil {
		view.BidderName = rec.Bidder.GetFullName()
	}
	return view
}

// CurrentValueView текущая стоимость аукциона для выдачи наружу
type CurrentValueView struct {
	Mode        string          `json:"mode"`
	Money       decimal.Decimal `json:"money,omitempty"`
	TimeMinutes int             `json:"time_minutes,omitempty"`
}

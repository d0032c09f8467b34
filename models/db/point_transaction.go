package dbmodels

type PointTransactionKind string

const (
	PointKindCompletion PointTransactionKind = "COMPLETION"
	PointKindPenalty    PointTransactionKind = "OVERDUE_PENALTY"
	PointKindAdjustment PointTransactionKind = "ADMIN_ADJUSTMENT"
)

// PointTransaction запись журнала баллов. Только добавляется,
// никогда не изменяется и не удаляется.
type PointTransaction struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(36);index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	TaskID     string    `gorm:"type:varchar(36)"`
	Kind       PointTransactionKind
	Amount     int
	Comment    string
}

package dbmodels

import (
	"fmt"
	"time"

	"task-exchange-backend/models"
)

type Employee struct {
	BaseModel
	Password   string `gorm:"type:varchar(128)"`
	FirstName  string `gorm:"type:varchar(150)"`
	LastName   string `gorm:"type:varchar(150)"`
	MiddleName string `gorm:"type:varchar(150)"`
	Email      string `gorm:"type:varchar(255);uniqueIndex"`

	Role   models.UserRole       `gorm:"type:varchar(20)"`
	Status models.EmployeeStatus `gorm:"type:varchar(20)"`
	Grade  models.Grade          `gorm:"type:varchar(1)"`
	Points int

	DepartmentID string `gorm:"type:varchar(36)"`
	ManagementID string `gorm:"type:varchar(36)"`
	DivisionID   string `gorm:"type:varchar(36)"`

	LastLogin time.Time
}

func (r Employee) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r Employee) IsWorking() bool {
	return r.Status == models.EmployeeWorkingStatus
}

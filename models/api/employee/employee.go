package employeeapimodels

import (
	"github.com/pkg/errors"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

type EmployeeData struct {
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	MiddleName   string          `json:"middle_name"`
	Role         models.UserRole `json:"role"`
	DepartmentID string          `json:"department_id"`
	ManagementID string          `json:"management_id"`
	DivisionID   string          `json:"division_id"`
}

func (r EmployeeData) Validate() error {
	if r.Email == "" {
		return errors.New("не указана почта")
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("не указано имя сотрудника")
	}
	if r.DepartmentID == "" {
		return errors.New("не указан департамент")
	}
	return nil
}

type AdjustData struct {
	Amount  int    `json:"amount"`
	Comment string `json:"comment"`
}

func (r AdjustData) Validate() error {
	if r.Amount == 0 {
		return errors.New("не указана сумма корректировки")
	}
	if r.Comment == "" {
		return errors.New("не указан комментарий корректировки")
	}
	return nil
}

type EmployeeView struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	RoleName     string `json:"role_name"`
	Status       string `json:"status"`
	Grade        string `json:"grade"`
	Points       int    `json:"points"`
	DepartmentID string `json:"department_id"`
	ManagementID string `json:"management_id,omitempty"`
	DivisionID   string `json:"division_id,omitempty"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	return EmployeeView{
		ID:           rec.ID,
		Email:        rec.Email,
		FullName:     rec.GetFullName(),
		Role:         string(rec.Role),
		RoleName:     rec.Role.ToHuman(),
		Status:       string(rec.Status),
		Grade:        string(rec.Grade),
		Points:       rec.Points,
		DepartmentID: rec.DepartmentID,
		ManagementID: rec.ManagementID,
		DivisionID:   rec.DivisionID,
	}
}

package dictapimodels

import (
	"github.com/pkg/errors"
	dbmodels "task-exchange-backend/models/db"
)

type DepartmentData struct {
	Name       string `json:"name"`
	DirectorID string `json:"director_id"`
}

func (r DepartmentData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название департамента")
	}
	return nil
}

type DepartmentView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DirectorID string `json:"director_id,omitempty"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:         rec.ID,
		Name:       rec.Name,
		DirectorID: rec.DirectorID,
	}
}

type ManagementData struct {
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

func (r ManagementData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название управления")
	}
	if r.DepartmentID == "" {
		return errors.New("не указан департамент")
	}
	return nil
}

type ManagementView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

func ManagementConvert(rec dbmodels.Management) ManagementView {
	return ManagementView{
		ID:           rec.ID,
		Name:         rec.Name,
		DepartmentID: rec.DepartmentID,
	}
}

type DivisionData struct {
	Name         string `json:"name"`
	ManagementID string `json:"management_id"`
}

func (r DivisionData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название отдела")
	}
	if r.ManagementID == "" {
		return errors.New("не указано управление")
	}
	return nil
}

type DivisionView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ManagementID string `json:"management_id"`
}

func DivisionConvert(rec dbmodels.Division) DivisionView {
	return DivisionView{
		ID:           rec.ID,
		Name:         rec.Name,
		ManagementID: rec.ManagementID,
	}
}

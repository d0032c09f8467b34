package models

type UserRole string

const (
	UserRoleEmployee UserRole = "EMPLOYEE"
	UserRoleDirector UserRole = "DIRECTOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	UserRoleEmployee: "Сотрудник",
	UserRoleDirector: "Директор департамента",
	UserRoleAdmin:    "Администратор",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

func (r UserRole) IsDirector() bool {
	return r == UserRoleDirector
}

const SystemUser = "Система"

type EmployeeStatus string

const (
	EmployeeWorkingStatus   EmployeeStatus = "WORKING"
	EmployeeDismissedStatus EmployeeStatus = "DISMISSED"
)

var employeeStatusHumanName = map[EmployeeStatus]string{
	EmployeeWorkingStatus:   "Работает",
	EmployeeDismissedStatus: "Уволен",
}

func (s EmployeeStatus) ToHuman() string {
	if human, exist := employeeStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

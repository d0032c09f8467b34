package models

type TaskStatus string

const (
	TaskStatusBacklog     TaskStatus = "BACKLOG"
	TaskStatusInProgress  TaskStatus = "IN_PROGRESS"
	TaskStatusUnderReview TaskStatus = "UNDER_REVIEW"
	TaskStatusDone        TaskStatus = "DONE"
)

var taskStatusHumanName = map[TaskStatus]string{
	TaskStatusBacklog:     "В бэклоге",
	TaskStatusInProgress:  "В работе",
	TaskStatusUnderReview: "На проверке",
	TaskStatusDone:        "Завершена",
}

func (s TaskStatus) ToHuman() string {
	if human, exist := taskStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type TaskType string

const (
	TaskTypeIndividual TaskType = "INDIVIDUAL"
	TaskTypeUnit       TaskType = "UNIT"
	TaskTypeDepartment TaskType = "DEPARTMENT"
)

var taskTypeHumanName = map[TaskType]string{
	TaskTypeIndividual: "Индивидуальная",
	TaskTypeUnit:       "Для отдела",
	TaskTypeDepartment: "Для департамента",
}

func (t TaskType) ToHuman() string {
	if human, exist := taskTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

// IsAuctionable индивидуальные задачи не выставляются на аукцион
func (t TaskType) IsAuctionable() bool {
	return t != TaskTypeIndividual
}

type TaskMode string

const (
	TaskModeMoney TaskMode = "MONEY"
	TaskModeTime  TaskMode = "TIME"
)

var taskModeHumanName = map[TaskMode]string{
	TaskModeMoney: "Деньги",
	TaskModeTime:  "Время",
}

func (m TaskMode) ToHuman() string {
	if human, exist := taskModeHumanName[m]; exist {
		return human
	}
	return string(m)
}

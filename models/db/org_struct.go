package dbmodels

// Оргструктура: департамент → управление → отдел

type Department struct {
	BaseModel
	Name       string `gorm:"type:varchar(255)"`
	DirectorID string `gorm:"type:varchar(36)"`
}

type Management struct {
	BaseModel
	Name         string      `gorm:"type:varchar(255)"`
	DepartmentID string      `gorm:"type:varchar(36);index"`
	Department   *Department `gorm:"foreignKey:DepartmentID"`
}

type Division struct {
	BaseModel
	Name         string      `gorm:"type:varchar(255)"`
	ManagementID string      `gorm:"type:varchar(36);index"`
	Management   *Management `gorm:"foreignKey:ManagementID"`
}

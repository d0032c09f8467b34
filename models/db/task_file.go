package dbmodels

type TaskFile struct {
	BaseModel
	TaskID      string `gorm:"type:varchar(36);index"`
	FileName    string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(100)"`
	ObjectID    string `gorm:"type:varchar(36)"` // ключ объекта в S3
	UploadedBy  string `gorm:"type:varchar(36)"`
}

package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "task-exchange-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Management{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Management")
	}
	if err := DB.AutoMigrate(&dbmodels.Division{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Division")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Task")
	}
	if err := DB.AutoMigrate(&dbmodels.AuctionBid{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AuctionBid")
	}
	if err := DB.AutoMigrate(&dbmodels.PointTransaction{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PointTransaction")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskFile{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskFile")
	}
	log.Info("Миграция прошла успешно")
	return nil
}

package initializers

import (
	"context"

	"task-exchange-backend/config"
	"task-exchange-backend/fiberlog"
	auctionhandler "task-exchange-backend/lib/auction"
	auctionbidhandler "task-exchange-backend/lib/auction-bid"
	auctionprice "task-exchange-backend/lib/auction/price"
	auctionworker "task-exchange-backend/lib/auction/worker"
	authhandler "task-exchange-backend/lib/auth"
	departmentprovider "task-exchange-backend/lib/dicts/department"
	divisionprovider "task-exchange-backend/lib/dicts/division"
	managementprovider "task-exchange-backend/lib/dicts/management"
	employeehandler "task-exchange-backend/lib/employee"
	xlsexport "task-exchange-backend/lib/export/xls"
	filestorage "task-exchange-backend/lib/file-storage"
	pointshandler "task-exchange-backend/lib/points"
	taskhandler "task-exchange-backend/lib/task"
	"task-exchange-backend/lib/worktime"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()

	cal := worktime.NewCalendar(
		config.Conf.Work.TZOffsetHours,
		config.Conf.Work.DayStartHour,
		config.Conf.Work.DayEndHour,
	)
	schedule := auctionprice.NewSchedule(
		config.Conf.Auction.CheckpointIntervalHours,
		config.Conf.Auction.GraceCheckpoints,
		config.Conf.Auction.CeilingMultiplier,
	)

	filestorage.NewHandler()
	authhandler.NewHandler()
	employeehandler.NewHandler()
	departmentprovider.NewHandler()
	managementprovider.NewHandler()
	divisionprovider.NewHandler()
	pointshandler.NewHandler()
	taskhandler.NewHandler(cal)
	auctionbidhandler.NewHandler(schedule)
	auctionhandler.NewHandler(schedule)
	xlsexport.NewHandler()

	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача закрытия аукционов и возврата задач с истёкшей проверкой
	auctionworker.Run(ctx)
}

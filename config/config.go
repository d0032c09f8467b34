package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"task-exchange" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		Bucket          string `default:"task-files" env:"S3_BUCKET"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"noreply@task-exchange.local" env:"SMTP_FROM"`
	}
	// Рабочий календарь организации
	Work struct {
		TZOffsetHours     int `default:"3" env:"WORK_TZ_OFFSET_HOURS"`
		DayStartHour      int `default:"9" env:"WORK_DAY_START_HOUR"`
		DayEndHour        int `default:"18" env:"WORK_DAY_END_HOUR"`
		ReviewPeriodHours int `default:"48" env:"WORK_REVIEW_PERIOD_HOURS"`
	}
	// Параметры аукциона
	Auction struct {
		SweepIntervalSec        int     `default:"300" env:"AUCTION_SWEEP_INTERVAL_SEC"`
		NoBidGraceHours         int     `default:"3" env:"AUCTION_NO_BID_GRACE_HOURS"`
		CheckpointIntervalHours int     `default:"3" env:"AUCTION_CHECKPOINT_INTERVAL_HOURS"`
		GraceCheckpoints        int     `default:"2" env:"AUCTION_GRACE_CHECKPOINTS"`
		CeilingMultiplier       float64 `default:"1.5" env:"AUCTION_CEILING_MULTIPLIER"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

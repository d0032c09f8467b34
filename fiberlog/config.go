package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки журналирования запросов api
type Config struct {
	// Logger целевой логгер, nil — стандартный logrus
	Logger *logrus.Logger
	// Tags набор тегов, попадающих в каждую запись
	Tags []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}

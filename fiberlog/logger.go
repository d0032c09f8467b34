package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const requestMessage = "запрос api"

// New middleware журналирования запросов api настроенным набором тегов
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := &data{pid: os.Getpid()}
	tagFuncs := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		// preflight-запросы не журналируем
		if c.Method() == fiber.MethodOptions {
			return err
		}
		fields := collectFields(tagFuncs, c, d)
		if cfg.Logger == nil {
			log.WithFields(fields).Info(requestMessage)
			return err
		}
		entry := cfg.Logger.WithFields(fields)
		if c.Response() != nil && c.Response().StatusCode() >= 300 {
			entry.Warn(requestMessage)
		} else {
			entry.Info(requestMessage)
		}
		return err
	}
}

// collectFields значения тегов запроса, пустые строки опускаются
func collectFields(tagFuncs map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(tagFuncs))
	for tag, fn := range tagFuncs {
		value := fn(c, d)
		if strValue, ok := value.(string); ok {
			if strValue != "" {
				fields[tag] = strValue
			}
			continue
		}
		fields[tag] = value
	}
	return fields
}

package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

// BaseImpl каркас периодической фоновой задачи биржи. Итерации идут
// последовательно в одной горутине, тики не накладываются.
type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("паника фоновой задачи: %v", r)
		}
	}()
	logger := i.GetLogger()
	wait := i.firstRunDelay
	for {
		select {
		case <-ctx.Done():
			logger.Info("Фоновая задача остановлена")
			return
		case <-time.After(wait):
			logger.Info("Фоновая задача запущена")
			jobFunc(ctx)
			logger.Info("Фоновая задача выполнена")
		}
		wait = i.runInterval
	}
}

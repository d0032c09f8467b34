package auctionworker

import (
	"context"
	"time"

	"task-exchange-backend/config"
	auctionhandler "task-exchange-backend/lib/auction"
	taskhandler "task-exchange-backend/lib/task"
	baseworker "task-exchange-backend/lib/utils/base-worker"
)

const workerName = "AUCTION_SWEEP"

// Run периодический обход биржи: закрытие аукционов с наступившим
// условием и возврат задач с истёкшим сроком проверки
func Run(ctx context.Context) {
	interval := time.Duration(config.Conf.Auction.SweepIntervalSec) * time.Second
	w := worker{
		BaseImpl: *baseworker.NewInstance(workerName, time.Second, interval),
	}
	go w.Run(ctx, w.sweep)
}

type worker struct {
	baseworker.BaseImpl
}

func (w worker) sweep(ctx context.Context) {
	auctionhandler.Instance.SettleDue(ctx)
	taskhandler.Instance.ExpireOverdueReviews(ctx)
}

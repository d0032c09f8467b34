package auctionranking

import (
	"sort"

	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

// Less полный порядок ставок, лучшая — первая:
// 1) меньшая стоимость (деньги или минуты по режиму задачи);
// 2) при равной стоимости — больше зафиксированных баллов участника;
// 3) далее — более ранняя ставка;
// 4) идентификатор как финальный разделитель, чтобы порядок был полным.
func Less(a, b dbmodels.AuctionBid, mode models.TaskMode) bool {
	switch mode {
	case models.TaskModeTime:
		if a.ValueTimeMinutes != b.ValueTimeMinutes {
			return a.ValueTimeMinutes < b.ValueTimeMinutes
		}
	default:
		if cmp := a.ValueMoney.Cmp(b.ValueMoney); cmp != 0 {
			return cmp < 0
		}
	}
	if a.BidderPoints != b.BidderPoints {
		return a.BidderPoints > b.BidderPoints
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Sort сортирует ставки по возрастанию порядка Less (лучшая первой)
func Sort(bids []dbmodels.AuctionBid, mode models.TaskMode) {
	sort.Slice(bids, func(i, j int) bool {
		return Less(bids[i], bids[j], mode)
	})
}

// SelectWinner лучшая ставка набора или nil для пустого набора.
// Ставки должны быть заранее отфильтрованы: только активные и только
// не от администраторов.
func SelectWinner(bids []dbmodels.AuctionBid, mode models.TaskMode) *dbmodels.AuctionBid {
	var winner *dbmodels.AuctionBid
	for idx := range bids {
		if winner == nil || Less(bids[idx], *winner, mode) {
			winner = &bids[idx]
		}
	}
	if winner == nil {
		return nil
	}
	result := *winner
	return &result
}

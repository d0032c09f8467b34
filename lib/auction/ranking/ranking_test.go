package auctionranking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"task-exchange-backend/models"
	dbmodels "task-exchange-backend/models/db"
)

func bid(id string, money int64, points int, createdAt time.Time) dbmodels.AuctionBid {
	rec := dbmodels.AuctionBid{
		ValueMoney:   decimal.NewFromInt(money),
		BidderPoints: points,
		IsActive:     true,
	}
	rec.ID = id
	rec.CreatedAt = createdAt
	return rec
}

func TestSelectWinner(t *testing.T) {
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	t.Run(`empty set`, func(t *testing.T) {
		require.Nil(t, SelectWinner(nil, models.TaskModeMoney))
	})

	t.Run(`lowest value wins`, func(t *testing.T) {
		bids := []dbmodels.AuctionBid{
			bid("a", 90, 10, now),
			bid("b", 85, 10, now.Add(time.Minute)),
			bid("c", 95, 200, now.Add(2*time.Minute)),
		}
		winner := SelectWinner(bids, models.TaskModeMoney)
		require.NotNil(t, winner)
		require.Equal(t, "b", winner.ID)
	})

	t.Run(`equal value, higher points win regardless of order`, func(t *testing.T) {
		first := bid("a", 85, 95, now.Add(time.Hour))
		second := bid("b", 85, 80, now)
		winner := SelectWinner([]dbmodels.AuctionBid{first, second}, models.TaskModeMoney)
		require.Equal(t, "a", winner.ID)
		winner = SelectWinner([]dbmodels.AuctionBid{second, first}, models.TaskModeMoney)
		require.Equal(t, "a", winner.ID)
	})

	t.Run(`equal value and points, earlier bid wins`, func(t *testing.T) {
		early := bid("a", 85, 50, now)
		late := bid("b", 85, 50, now.Add(time.Second))
		winner := SelectWinner([]dbmodels.AuctionBid{late, early}, models.TaskModeMoney)
		require.Equal(t, "a", winner.ID)
	})

	t.Run(`deterministic on reversal`, func(t *testing.T) {
		bids := []dbmodels.AuctionBid{
			bid("a", 90, 10, now),
			bid("b", 85, 95, now),
			bid("c", 85, 80, now),
			bid("d", 100, 300, now),
		}
		winner := SelectWinner(bids, models.TaskModeMoney)
		reversed := make([]dbmodels.AuctionBid, 0, len(bids))
		for idx := len(bids) - 1; idx >= 0; idx-- {
			reversed = append(reversed, bids[idx])
		}
		winnerReversed := SelectWinner(reversed, models.TaskModeMoney)
		require.Equal(t, winner.ID, winnerReversed.ID)
	})

	t.Run(`time mode compares minutes`, func(t *testing.T) {
		quick := dbmodels.AuctionBid{ValueTimeMinutes: 120, BidderPoints: 5}
		quick.ID = "a"
		slow := dbmodels.AuctionBid{ValueTimeMinutes: 240, BidderPoints: 500}
		slow.ID = "b"
		winner := SelectWinner([]dbmodels.AuctionBid{slow, quick}, models.TaskModeTime)
		require.Equal(t, "a", winner.ID)
	})

	t.Run(`sort best first`, func(t *testing.T) {
		bids := []dbmodels.AuctionBid{
			bid("a", 90, 10, now),
			bid("b", 85, 95, now),
			bid("c", 85, 80, now),
		}
		Sort(bids, models.TaskModeMoney)
		require.Equal(t, "b", bids[0].ID)
		require.Equal(t, "c", bids[1].ID)
		require.Equal(t, "a", bids[2].ID)
	})
}

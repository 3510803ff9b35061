package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

const leaderboardSize = 10

type LeaderboardEntry struct {
	UserID   string
	NetWorth decimal.Decimal
}

// Leaderboard ranks every account by balance plus holdings valued at
// the current price, descending. Ties keep account-creation order.
func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	price, err := s.CurrentPrice(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, LeaderboardEntry{
			UserID:   a.UserID,
			NetWorth: a.Balance.Add(a.Foxcoin.Mul(price)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NetWorth.GreaterThan(entries[j].NetWorth)
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}

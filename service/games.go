package service

import (
	"context"

	"github.com/shopspring/decimal"
)

type CoinFlipResult struct {
	Result     string
	Won        bool
	Stake      decimal.Decimal
	NewBalance decimal.Decimal
}

// CoinFlip wagers the stake on heads or tails against a uniform draw.
func (s *Service) CoinFlip(ctx context.Context, userID, choice, amountArg string) (CoinFlipResult, error) {
	if choice != "heads" && choice != "tails" {
		return CoinFlipResult{}, ErrInvalidChoice
	}
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return CoinFlipResult{}, err
	}
	stake, err := resolveStake(amountArg, account.Balance)
	if err != nil {
		return CoinFlipResult{}, err
	}

	result := "heads"
	if s.rng.Intn(2) == 1 {
		result = "tails"
	}
	won := choice == result
	delta := stake
	if !won {
		delta = stake.Neg()
	}
	balance, err := s.repo.UpdateBalance(ctx, userID, delta)
	if err != nil {
		return CoinFlipResult{}, err
	}
	return CoinFlipResult{Result: result, Won: won, Stake: stake, NewBalance: balance}, nil
}

const (
	TaiXiuTai   = "tai"
	TaiXiuXiu   = "xiu"
	TaiXiuHouse = "house"
)

type TaiXiuResult struct {
	Dice       [3]int
	Total      int
	Outcome    string
	Won        bool
	Stake      decimal.Decimal
	NewBalance decimal.Decimal
}

// taiXiuOutcome maps a three-dice total to its resolution: 4-10 is xiu,
// 11-17 is tai, and the extremes 3 and 18 are house wins.
func taiXiuOutcome(total int) string {
	switch {
	case total >= 4 && total <= 10:
		return TaiXiuXiu
	case total >= 11 && total <= 17:
		return TaiXiuTai
	default:
		return TaiXiuHouse
	}
}

// TaiXiu rolls three dice and settles the over/under wager. A house
// outcome leaves the balance untouched.
func (s *Service) TaiXiu(ctx context.Context, userID, choice, amountArg string) (TaiXiuResult, error) {
	if choice != TaiXiuTai && choice != TaiXiuXiu {
		return TaiXiuResult{}, ErrInvalidChoice
	}
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return TaiXiuResult{}, err
	}
	stake, err := resolveStake(amountArg, account.Balance)
	if err != nil {
		return TaiXiuResult{}, err
	}

	var dice [3]int
	total := 0
	for i := range dice {
		dice[i] = s.rng.rangeIn(1, 6)
		total += dice[i]
	}
	outcome := taiXiuOutcome(total)

	res := TaiXiuResult{Dice: dice, Total: total, Outcome: outcome, Stake: stake, NewBalance: account.Balance}
	if outcome == TaiXiuHouse {
		return res, nil
	}
	res.Won = choice == outcome
	delta := stake
	if !res.Won {
		delta = stake.Neg()
	}
	balance, err := s.repo.UpdateBalance(ctx, userID, delta)
	if err != nil {
		return TaiXiuResult{}, err
	}
	res.NewBalance = balance
	return res, nil
}

var slotSymbols = []string{"🍕", "🍔", "🍟", "🌭", "🍿", "🍖", "🍗", "🥩", "🍠", "🍘", "🍤", "🍉"}

type SpinResult struct {
	Symbols    [3]string
	Won        bool
	Stake      decimal.Decimal
	NewBalance decimal.Decimal
}

// Spin draws three slot symbols; only a triple pays out.
func (s *Service) Spin(ctx context.Context, userID, amountArg string) (SpinResult, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return SpinResult{}, err
	}
	stake, err := resolveStake(amountArg, account.Balance)
	if err != nil {
		return SpinResult{}, err
	}

	var symbols [3]string
	for i := range symbols {
		symbols[i] = slotSymbols[s.rng.Intn(len(slotSymbols))]
	}
	won := symbols[0] == symbols[1] && symbols[1] == symbols[2]
	delta := stake
	if !won {
		delta = stake.Neg()
	}
	balance, err := s.repo.UpdateBalance(ctx, userID, delta)
	if err != nil {
		return SpinResult{}, err
	}
	return SpinResult{Symbols: symbols, Won: won, Stake: stake, NewBalance: balance}, nil
}

package service

import (
	"context"

	"zerobot/models"

	"github.com/shopspring/decimal"
)

var workJobs = []string{"lập trình", "thiết kế", "nhiếp ảnh", "viết content", "dịch thuật"}

// Balance returns the caller's account, creating it on first use.
func (s *Service) Balance(ctx context.Context, userID string) (models.Account, error) {
	return s.repo.GetAccount(ctx, userID)
}

type DailyResult struct {
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// Daily credits the fixed daily reward, at most once per 24 hours.
func (s *Service) Daily(ctx context.Context, userID string) (DailyResult, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return DailyResult{}, err
	}
	now := s.now().UTC()
	if account.LastDaily != nil {
		if elapsed := now.Sub(*account.LastDaily); elapsed < dailyCooldown {
			return DailyResult{}, &CooldownError{Action: "daily", Remaining: dailyCooldown - elapsed}
		}
	}
	amount := decimal.NewFromInt(dailyAmount)
	balance, err := s.repo.CreditDaily(ctx, userID, amount, now)
	if err != nil {
		return DailyResult{}, err
	}
	return DailyResult{Amount: amount, NewBalance: balance}, nil
}

type WorkResult struct {
	Job        string
	Earnings   decimal.Decimal
	NewBalance decimal.Decimal
}

// Work credits a random wage, at most once per 30 minutes.
func (s *Service) Work(ctx context.Context, userID string) (WorkResult, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return WorkResult{}, err
	}
	now := s.now().UTC()
	if account.LastWork != nil {
		if elapsed := now.Sub(*account.LastWork); elapsed < workCooldown {
			return WorkResult{}, &CooldownError{Action: "work", Remaining: workCooldown - elapsed}
		}
	}
	earnings := decimal.NewFromInt(int64(s.rng.rangeIn(workMin, workMax)))
	balance, err := s.repo.CreditWork(ctx, userID, earnings, now)
	if err != nil {
		return WorkResult{}, err
	}
	job := workJobs[s.rng.Intn(len(workJobs))]
	return WorkResult{Job: job, Earnings: earnings, NewBalance: balance}, nil
}

type GiveResult struct {
	Amount        decimal.Decimal
	SenderBalance decimal.Decimal
}

// Give transfers amount from one account to another. Self-transfers,
// non-positive amounts and over-balance amounts are rejected before any
// mutation.
func (s *Service) Give(ctx context.Context, fromUser, toUser string, amount decimal.Decimal) (GiveResult, error) {
	if fromUser == toUser {
		return GiveResult{}, ErrSelfTarget
	}
	if !amount.IsPositive() {
		return GiveResult{}, ErrInvalidAmount
	}
	// materialize both rows: a first-ever give must debit the default
	// balance, and the transfer needs a row to credit
	if _, err := s.repo.GetAccount(ctx, fromUser); err != nil {
		return GiveResult{}, err
	}
	if _, err := s.repo.GetAccount(ctx, toUser); err != nil {
		return GiveResult{}, err
	}
	if err := s.repo.Transfer(ctx, fromUser, toUser, amount, "give"); err != nil {
		return GiveResult{}, err
	}
	sender, err := s.repo.GetAccount(ctx, fromUser)
	if err != nil {
		return GiveResult{}, err
	}
	return GiveResult{Amount: amount, SenderBalance: sender.Balance}, nil
}

type RobResult struct {
	Success    bool
	Amount     decimal.Decimal
	Fine       decimal.Decimal
	NewBalance decimal.Decimal
}

// Rob attempts to steal from another account: 40% to take a random
// 100-500 (never more than the victim holds), otherwise a fine of 5% of
// the attacker's balance capped at 5000. One attempt per hour.
func (s *Service) Rob(ctx context.Context, attacker, victim string) (RobResult, error) {
	if attacker == victim {
		return RobResult{}, ErrSelfTarget
	}
	now := s.now().UTC()
	if remaining := s.robCooldowns.check(attacker, robCooldown, now); remaining > 0 {
		return RobResult{}, &CooldownError{Action: "rob", Remaining: remaining}
	}

	attackerAcc, err := s.repo.GetAccount(ctx, attacker)
	if err != nil {
		return RobResult{}, err
	}
	victimAcc, err := s.repo.GetAccount(ctx, victim)
	if err != nil {
		return RobResult{}, err
	}
	if victimAcc.Balance.LessThan(decimal.NewFromInt(robMinVictim)) {
		return RobResult{}, ErrVictimTooPoor
	}

	if s.rng.Float64() < robSuccessOdds {
		amount := decimal.NewFromInt(int64(s.rng.rangeIn(robStealMin, robStealMax)))
		if amount.GreaterThan(victimAcc.Balance) {
			amount = victimAcc.Balance
		}
		if err := s.repo.Transfer(ctx, victim, attacker, amount, "rob"); err != nil {
			return RobResult{}, err
		}
		s.robCooldowns.mark(attacker, now)
		balance, err := s.repo.GetAccount(ctx, attacker)
		if err != nil {
			return RobResult{}, err
		}
		return RobResult{Success: true, Amount: amount, NewBalance: balance.Balance}, nil
	}

	fine := attackerAcc.Balance.Mul(decimal.NewFromFloat(robFineRate)).Floor()
	if fineCap := decimal.NewFromInt(robFineCap); fine.GreaterThan(fineCap) {
		fine = fineCap
	}
	balance, err := s.repo.UpdateBalance(ctx, attacker, fine.Neg())
	if err != nil {
		return RobResult{}, err
	}
	s.robCooldowns.mark(attacker, now)
	return RobResult{Success: false, Fine: fine, NewBalance: balance}, nil
}

type AssetsResult struct {
	Balance      decimal.Decimal
	Foxcoin      decimal.Decimal
	FoxcoinPrice decimal.Decimal
	FoxcoinValue decimal.Decimal
	NetWorth     decimal.Decimal
}

// Assets reports the caller's balance, holdings valued at the current
// price, and total net worth.
func (s *Service) Assets(ctx context.Context, userID string) (AssetsResult, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return AssetsResult{}, err
	}
	price, err := s.CurrentPrice(ctx)
	if err != nil {
		return AssetsResult{}, err
	}
	value := account.Foxcoin.Mul(price)
	return AssetsResult{
		Balance:      account.Balance,
		Foxcoin:      account.Foxcoin,
		FoxcoinPrice: price,
		FoxcoinValue: value,
		NetWorth:     account.Balance.Add(value),
	}, nil
}

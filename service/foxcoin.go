package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"zerobot/models"
	"zerobot/repository"

	"github.com/shopspring/decimal"
)

// priceMoves is the discrete set of hourly percentage moves the price
// can take. This is the sole price-formation mechanism.
var priceMoves = []float64{0.005, -0.005, 0.01, -0.01, 0.02, -0.02, 0.03, -0.03}

// CurrentPrice returns the latest recorded foxcoin price, or the fixed
// initial price when the series has never been seeded.
func (s *Service) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	price, err := s.repo.LatestPrice(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoPrice) {
			return decimal.RequireFromString(defaultPriceStr), nil
		}
		return decimal.Zero, err
	}
	return price, nil
}

type FoxcoinInfo struct {
	Holdings  decimal.Decimal
	Price     decimal.Decimal
	Supply    decimal.Decimal
	MaxSupply decimal.Decimal
	Value     decimal.Decimal
}

// FoxcoinCheck reports the caller's holdings, the market price, and the
// circulating supply against the hard cap.
func (s *Service) FoxcoinCheck(ctx context.Context, userID string) (FoxcoinInfo, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return FoxcoinInfo{}, err
	}
	price, err := s.CurrentPrice(ctx)
	if err != nil {
		return FoxcoinInfo{}, err
	}
	supply, err := s.repo.TotalSupply(ctx)
	if err != nil {
		return FoxcoinInfo{}, err
	}
	return FoxcoinInfo{
		Holdings:  account.Foxcoin,
		Price:     price,
		Supply:    supply,
		MaxSupply: decimal.NewFromInt(maxFoxcoin),
		Value:     account.Foxcoin.Mul(price),
	}, nil
}

type FoxcoinTrade struct {
	Amount     decimal.Decimal
	Total      decimal.Decimal
	Holdings   decimal.Decimal
	NewBalance decimal.Decimal
}

// FoxcoinBuy debits balance by amount x price and credits holdings.
// "all" buys as many coins as the balance affords, clamped to the
// remaining supply headroom; an explicit amount exceeding the headroom
// is rejected.
func (s *Service) FoxcoinBuy(ctx context.Context, userID, numberArg string) (FoxcoinTrade, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return FoxcoinTrade{}, err
	}
	price, err := s.CurrentPrice(ctx)
	if err != nil {
		return FoxcoinTrade{}, err
	}
	supply, err := s.repo.TotalSupply(ctx)
	if err != nil {
		return FoxcoinTrade{}, err
	}
	maxSupply := decimal.NewFromInt(maxFoxcoin)

	var number decimal.Decimal
	if numberArg == "all" {
		number = account.Balance.Div(price)
		if headroom := maxSupply.Sub(supply); number.GreaterThan(headroom) {
			number = headroom
		}
	} else {
		number, err = parseCoinAmount(numberArg)
		if err != nil {
			return FoxcoinTrade{}, err
		}
	}

	cost := number.Mul(price).Round(2)
	if !number.IsPositive() || cost.GreaterThan(account.Balance) {
		return FoxcoinTrade{}, ErrInvalidAmount
	}
	if number.Add(supply).GreaterThan(maxSupply) {
		return FoxcoinTrade{}, ErrSupplyCap
	}

	updated, err := s.repo.UpdateHoldings(ctx, userID, cost.Neg(), number)
	if err != nil {
		return FoxcoinTrade{}, err
	}
	return FoxcoinTrade{
		Amount:     number,
		Total:      cost,
		Holdings:   updated.Foxcoin,
		NewBalance: updated.Balance,
	}, nil
}

// FoxcoinSell credits balance by amount x price and debits holdings.
// "all" sells the entire holding.
func (s *Service) FoxcoinSell(ctx context.Context, userID, numberArg string) (FoxcoinTrade, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return FoxcoinTrade{}, err
	}
	price, err := s.CurrentPrice(ctx)
	if err != nil {
		return FoxcoinTrade{}, err
	}

	var number decimal.Decimal
	if numberArg == "all" {
		number = account.Foxcoin
	} else {
		number, err = parseCoinAmount(numberArg)
		if err != nil {
			return FoxcoinTrade{}, err
		}
	}
	if !number.IsPositive() || number.GreaterThan(account.Foxcoin) {
		return FoxcoinTrade{}, ErrInvalidAmount
	}

	proceeds := number.Mul(price).Round(2)
	updated, err := s.repo.UpdateHoldings(ctx, userID, proceeds, number.Neg())
	if err != nil {
		return FoxcoinTrade{}, err
	}
	return FoxcoinTrade{
		Amount:     number,
		Total:      proceeds,
		Holdings:   updated.Foxcoin,
		NewBalance: updated.Balance,
	}, nil
}

func parseCoinAmount(arg string) (decimal.Decimal, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromInt(n), nil
}

// PriceTick appends the next price sample: the current price moved by a
// random entry of priceMoves, rounded to cents.
func (s *Service) PriceTick(ctx context.Context) error {
	price, err := s.CurrentPrice(ctx)
	if err != nil {
		return err
	}
	move := priceMoves[s.rng.Intn(len(priceMoves))]
	next := price.Mul(decimal.NewFromFloat(1 + move)).Round(2)
	return s.repo.AppendPrice(ctx, models.PriceSample{
		RecordedAt: s.now().UTC(),
		Price:      next,
	})
}

// RunPriceTicker drives PriceTick on a fixed interval until ctx ends.
// Each tick is independent; a failed tick is logged and skipped.
func (s *Service) RunPriceTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PriceTick(ctx); err != nil {
				log.Printf("cập nhật giá foxcoin thất bại: %v", err)
			}
		}
	}
}

// PriceHistory exposes the recorded series, oldest first.
func (s *Service) PriceHistory(ctx context.Context, limit int) ([]models.PriceSample, error) {
	return s.repo.PriceHistory(ctx, limit)
}

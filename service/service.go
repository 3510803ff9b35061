package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"zerobot/models"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=./mocks/mock_repository.go -package=mocks zerobot/service Repository

type Repository interface {
	GetAccount(ctx context.Context, userID string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateBalance(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error)
	UpdateHoldings(ctx context.Context, userID string, balanceDelta, foxcoinDelta decimal.Decimal) (models.Account, error)
	Transfer(ctx context.Context, fromUser, toUser string, amount decimal.Decimal, kind string) error
	CreditDaily(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	CreditWork(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	PurchasePet(ctx context.Context, userID, name string, cost decimal.Decimal) (decimal.Decimal, error)
	SellPet(ctx context.Context, userID, name string, refund decimal.Decimal) (decimal.Decimal, error)
	TransferPet(ctx context.Context, fromUser, toUser, name string) error
	PurchaseItem(ctx context.Context, userID, item string, quantity int, cost decimal.Decimal) (decimal.Decimal, error)
	LatestPrice(ctx context.Context) (decimal.Decimal, error)
	AppendPrice(ctx context.Context, sample models.PriceSample) error
	PriceHistory(ctx context.Context, limit int) ([]models.PriceSample, error)
	TotalSupply(ctx context.Context) (decimal.Decimal, error)
}

const (
	dailyAmount   = 500
	dailyCooldown = 24 * time.Hour

	workCooldown = 30 * time.Minute
	workMin      = 100
	workMax      = 500

	robCooldown    = time.Hour
	robMinVictim   = 100
	robSuccessOdds = 0.4
	robStealMin    = 100
	robStealMax    = 500
	robFineRate    = 0.05
	robFineCap     = 5000

	feedCost      = 50
	petResaleRate = 0.8

	maxFoxcoin       = 21_000_000_000
	defaultPriceStr  = "10.0"
	blackjackTimeout = 60 * time.Second
)

var (
	ErrInvalidStake        = errors.New("số tiền cược không hợp lệ hoặc vượt quá số dư")
	ErrInvalidAmount       = errors.New("số tiền phải lớn hơn 0")
	ErrInvalidChoice       = errors.New("lựa chọn không hợp lệ")
	ErrSelfTarget          = errors.New("không thể tự nhắm vào chính mình")
	ErrUnknownItem         = errors.New("vật phẩm không tồn tại trong cửa hàng")
	ErrUnknownPet          = errors.New("pet không tồn tại")
	ErrRoundInProgress     = errors.New("bạn đang có ván blackjack chưa kết thúc")
	ErrNoRound             = errors.New("bạn không có ván blackjack nào đang diễn ra")
	ErrSupplyCap           = errors.New("số lượng foxcoin có sẵn trên thị trường hiện không đủ")
	ErrVictimTooPoor       = errors.New("nạn nhân không có đủ tiền để cướp")
	ErrShopSellUnsupported = errors.New("bán vật phẩm chưa được hỗ trợ")
)

// CooldownError rejects a rate-limited action and carries the time left.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s đang trong thời gian chờ, thử lại sau %s", e.Action, e.Remaining)
}

type Service struct {
	repo Repository
	pets map[string]decimal.Decimal

	now func() time.Time
	rng *lockedRand

	rounds       *roundRegistry
	robCooldowns *cooldownRegistry
}

func NewService(repo Repository, petCatalog map[string]decimal.Decimal) *Service {
	return &Service{
		repo:         repo,
		pets:         petCatalog,
		now:          time.Now,
		rng:          newLockedRand(time.Now().UnixNano()),
		rounds:       newRoundRegistry(),
		robCooldowns: newCooldownRegistry(),
	}
}

// lockedRand makes one rand.Rand safe to share between command
// goroutines and the background tickers.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rnd.Shuffle(n, swap)
}

// rangeIn returns a uniform value in [min, max].
func (l *lockedRand) rangeIn(min, max int) int {
	return min + l.Intn(max-min+1)
}

// cooldownRegistry tracks the last use of a rate-limited action per
// user. Expired entries are dropped on access.
type cooldownRegistry struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func newCooldownRegistry() *cooldownRegistry {
	return &cooldownRegistry{last: make(map[string]time.Time)}
}

// check returns the remaining wait, or zero if the action is allowed.
func (c *cooldownRegistry) check(userID string, period time.Duration, now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.last[userID]
	if !ok {
		return 0
	}
	if elapsed := now.Sub(last); elapsed < period {
		return period - elapsed
	}
	delete(c.last, userID)
	return 0
}

func (c *cooldownRegistry) mark(userID string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[userID] = now
}

// resolveStake parses a wager argument: a positive integer, or "all"
// for the entire balance. The stake must not exceed the balance.
func resolveStake(arg string, balance decimal.Decimal) (decimal.Decimal, error) {
	var stake decimal.Decimal
	if arg == "all" {
		stake = balance
	} else {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return decimal.Zero, ErrInvalidStake
		}
		stake = decimal.NewFromInt(n)
	}
	if !stake.IsPositive() || stake.GreaterThan(balance) {
		return decimal.Zero, ErrInvalidStake
	}
	return stake, nil
}

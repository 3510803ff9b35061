package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"zerobot/models"
	"zerobot/service/mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, seed int64) (*Service, *mocks.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockRepository(ctrl)
	svc := NewService(repo, map[string]decimal.Decimal{"fox": decimal.NewFromInt(2000)})
	svc.rng = newLockedRand(seed)
	return svc, repo
}

func TestTaiXiuOutcome(t *testing.T) {
	for total := 3; total <= 18; total++ {
		want := TaiXiuTai
		switch {
		case total == 3 || total == 18:
			want = TaiXiuHouse
		case total <= 10:
			want = TaiXiuXiu
		}
		require.Equal(t, want, taiXiuOutcome(total), "total %d", total)
	}
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		ranks []string
		want  int
	}{
		{name: "face cards", ranks: []string{"K", "Q"}, want: 20},
		{name: "soft ace stays high", ranks: []string{"A", "7"}, want: 18},
		{name: "ace softens on bust", ranks: []string{"A", "K", "5"}, want: 16},
		{name: "double ace", ranks: []string{"A", "A", "9"}, want: 21},
		{name: "all aces", ranks: []string{"A", "A", "A"}, want: 13},
		{name: "tens", ranks: []string{"10", "9", "3"}, want: 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := make([]card, 0, len(tt.ranks))
			for _, r := range tt.ranks {
				hand = append(hand, card{rank: r, suit: "♠"})
			}
			require.Equal(t, tt.want, handValue(hand))
		})
	}
}

func TestResolveStake(t *testing.T) {
	balance := decimal.NewFromInt(1000)
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "plain number", arg: "250", want: "250"},
		{name: "all means balance", arg: "all", want: "1000"},
		{name: "over balance", arg: "1001", wantErr: true},
		{name: "zero", arg: "0", wantErr: true},
		{name: "negative", arg: "-5", wantErr: true},
		{name: "not a number", arg: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stake, err := resolveStake(tt.arg, balance)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStake)
				return
			}
			require.NoError(t, err)
			require.True(t, stake.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestResolveStakeAllWithZeroBalance(t *testing.T) {
	_, err := resolveStake("all", decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidStake)
}

func TestDigitReduce(t *testing.T) {
	tests := []struct {
		n    int64
		want int64
	}{
		{n: 5, want: 5},
		{n: 10, want: 1},
		{n: 99, want: 9},
		{n: 123456789, want: 9},
		{n: 1000000007, want: 8},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, digitReduce(tt.n), "n=%d", tt.n)
	}
}

func TestLove(t *testing.T) {
	svc, _ := newTestService(t, 1)

	res, err := svc.Love("123456789012345678", "876543210987654321")
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Percent, 0)
	require.Less(t, res.Percent, 100)

	_, err = svc.Love("alice", "876543210987654321")
	require.ErrorIs(t, err, ErrInvalidChoice)
}

func TestCoinFlipSettlesAgainstStake(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		svc, repo := newTestService(t, seed)
		stake := decimal.NewFromInt(200)

		repo.EXPECT().
			GetAccount(gomock.Any(), "u1").
			Return(account("u1", "1000"), nil)
		repo.EXPECT().
			UpdateBalance(gomock.Any(), "u1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, delta decimal.Decimal) (decimal.Decimal, error) {
				require.True(t, delta.Abs().Equal(stake))
				return decimal.NewFromInt(1000).Add(delta), nil
			})

		res, err := svc.CoinFlip(context.Background(), "u1", "heads", "200")
		require.NoError(t, err)
		require.Contains(t, []string{"heads", "tails"}, res.Result)
		require.Equal(t, res.Won, res.Result == "heads")
		if res.Won {
			require.True(t, res.NewBalance.Equal(decimal.NewFromInt(1200)))
		} else {
			require.True(t, res.NewBalance.Equal(decimal.NewFromInt(800)))
		}
	}
}

func TestCoinFlipRejectsBadChoice(t *testing.T) {
	svc, _ := newTestService(t, 1)
	_, err := svc.CoinFlip(context.Background(), "u1", "edge", "100")
	require.ErrorIs(t, err, ErrInvalidChoice)
}

func TestTaiXiuHouseKeepsBalance(t *testing.T) {
	// scan seeds for a triple-one or triple-six roll; one always
	// appears well inside the range
	for seed := int64(0); seed < 5000; seed++ {
		rng := newLockedRand(seed)
		total := rng.rangeIn(1, 6) + rng.rangeIn(1, 6) + rng.rangeIn(1, 6)
		if total != 3 && total != 18 {
			continue
		}

		svc, repo := newTestService(t, seed)
		repo.EXPECT().
			GetAccount(gomock.Any(), "u1").
			Return(account("u1", "1000"), nil)
		// no UpdateBalance call expected on a house outcome

		res, err := svc.TaiXiu(context.Background(), "u1", TaiXiuTai, "500")
		require.NoError(t, err)
		require.Equal(t, TaiXiuHouse, res.Outcome)
		require.False(t, res.Won)
		require.True(t, res.NewBalance.Equal(decimal.NewFromInt(1000)))
		return
	}
	t.Fatal("no house roll found in seed range")
}

func TestSpinOnlyTriplePays(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		svc, repo := newTestService(t, seed)

		repo.EXPECT().
			GetAccount(gomock.Any(), "u1").
			Return(account("u1", "1000"), nil)
		repo.EXPECT().
			UpdateBalance(gomock.Any(), "u1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, delta decimal.Decimal) (decimal.Decimal, error) {
				return decimal.NewFromInt(1000).Add(delta), nil
			})

		res, err := svc.Spin(context.Background(), "u1", "100")
		require.NoError(t, err)
		triple := res.Symbols[0] == res.Symbols[1] && res.Symbols[1] == res.Symbols[2]
		require.Equal(t, triple, res.Won)
	}
}

func TestWorkPaysWithinRange(t *testing.T) {
	svc, repo := newTestService(t, 7)

	repo.EXPECT().
		GetAccount(gomock.Any(), "u1").
		Return(account("u1", "1000"), nil)
	repo.EXPECT().
		CreditWork(gomock.Any(), "u1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal, _ time.Time) (decimal.Decimal, error) {
			require.True(t, amount.GreaterThanOrEqual(decimal.NewFromInt(workMin)))
			require.True(t, amount.LessThanOrEqual(decimal.NewFromInt(workMax)))
			return decimal.NewFromInt(1000).Add(amount), nil
		})

	res, err := svc.Work(context.Background(), "u1")
	require.NoError(t, err)
	require.Contains(t, workJobs, res.Job)
}

func TestDishPicksAKnownSuggestion(t *testing.T) {
	svc, _ := newTestService(t, 3)
	for i := 0; i < 50; i++ {
		suggestion := svc.Dish()
		ok := suggestion == "Mình nghĩ hôm nay bạn nên nhịn đói!" ||
			strings.HasPrefix(suggestion, "Mình nghĩ hôm nay bạn nên ăn ") ||
			strings.HasPrefix(suggestion, "Mình nghĩ hôm nay bạn nên uống ")
		require.True(t, ok, suggestion)
	}
}

func TestRobSecondAttemptHitsCooldown(t *testing.T) {
	svc, _ := newTestService(t, 1)
	svc.robCooldowns.mark("alice", svc.now().UTC())

	_, err := svc.Rob(context.Background(), "alice", "bob")
	var cd *CooldownError
	require.ErrorAs(t, err, &cd)
	require.Equal(t, "rob", cd.Action)
	require.Positive(t, cd.Remaining)
}

func TestCooldownRegistry(t *testing.T) {
	reg := newCooldownRegistry()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.Zero(t, reg.check("u1", time.Hour, base))
	reg.mark("u1", base)
	require.Equal(t, 30*time.Minute, reg.check("u1", time.Hour, base.Add(30*time.Minute)))
	require.Zero(t, reg.check("u1", time.Hour, base.Add(time.Hour)))
	// the expired entry is dropped, so a fresh check passes again
	require.Zero(t, reg.check("u1", time.Hour, base.Add(61*time.Minute)))
}

func account(userID, balance string) models.Account {
	return models.Account{
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
	}
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type RoundState int

const (
	RoundPlayerTurn RoundState = iota
	RoundDealerTurn
	RoundResolved
	RoundCancelled
)

type BlackjackOutcome string

const (
	OutcomeWin  BlackjackOutcome = "win"
	OutcomeLose BlackjackOutcome = "lose"
	OutcomePush BlackjackOutcome = "push"
	OutcomeBust BlackjackOutcome = "bust"
)

var (
	cardSuits = []string{"♠", "♥", "♦", "♣"}
	cardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

type card struct {
	rank string
	suit string
}

func (c card) String() string { return c.rank + c.suit }

func cardValue(rank string) int {
	switch rank {
	case "J", "Q", "K":
		return 10
	case "A":
		return 11
	case "10":
		return 10
	default:
		return int(rank[0] - '0')
	}
}

// handValue totals a hand, counting aces as 11 and softening them to 1
// one at a time while the total exceeds 21.
func handValue(hand []card) int {
	value := 0
	aces := 0
	for _, c := range hand {
		value += cardValue(c.rank)
		if c.rank == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

type blackjackRound struct {
	mu       sync.Mutex
	userID   string
	stake    decimal.Decimal
	deck     []card
	player   []card
	dealer   []card
	state    RoundState
	timer    *time.Timer
	deadline time.Time
}

func (r *blackjackRound) draw() card {
	c := r.deck[len(r.deck)-1]
	r.deck = r.deck[:len(r.deck)-1]
	return c
}

// roundRegistry holds at most one active round per player.
type roundRegistry struct {
	mu     sync.Mutex
	rounds map[string]*blackjackRound
}

func newRoundRegistry() *roundRegistry {
	return &roundRegistry{rounds: make(map[string]*blackjackRound)}
}

func (rr *roundRegistry) get(userID string) (*blackjackRound, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	r, ok := rr.rounds[userID]
	return r, ok
}

func (rr *roundRegistry) put(userID string, r *blackjackRound) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if _, exists := rr.rounds[userID]; exists {
		return false
	}
	rr.rounds[userID] = r
	return true
}

func (rr *roundRegistry) remove(userID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	delete(rr.rounds, userID)
}

type BlackjackView struct {
	State       RoundState
	Player      []string
	Dealer      []string
	PlayerTotal int
	DealerTotal int
	Drawn       string
	Stake       decimal.Decimal
	Outcome     BlackjackOutcome
	NewBalance  decimal.Decimal
}

func (r *blackjackRound) view() BlackjackView {
	v := BlackjackView{
		State:       r.state,
		PlayerTotal: handValue(r.player),
		DealerTotal: handValue(r.dealer),
		Stake:       r.stake,
	}
	for _, c := range r.player {
		v.Player = append(v.Player, c.String())
	}
	for _, c := range r.dealer {
		v.Dealer = append(v.Dealer, c.String())
	}
	return v
}

// StartBlackjack deals a fresh single-deck round. Only one round per
// player may run at a time; a round left without input for 60 seconds
// is cancelled via onExpire with no balance change.
func (s *Service) StartBlackjack(
	ctx context.Context,
	userID, amountArg string,
	onExpire func(),
) (BlackjackView, error) {
	if _, active := s.rounds.get(userID); active {
		return BlackjackView{}, ErrRoundInProgress
	}
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return BlackjackView{}, err
	}
	stake, err := resolveStake(amountArg, account.Balance)
	if err != nil {
		return BlackjackView{}, err
	}

	deck := make([]card, 0, 52)
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			deck = append(deck, card{rank: rank, suit: suit})
		}
	}
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	round := &blackjackRound{
		userID: userID,
		stake:  stake,
		deck:   deck,
		state:  RoundPlayerTurn,
	}
	round.player = []card{round.draw(), round.draw()}
	round.dealer = []card{round.draw(), round.draw()}

	// the timer must exist before the round is visible to hit/stand
	round.deadline = time.Now().Add(blackjackTimeout)
	round.timer = time.AfterFunc(blackjackTimeout, func() {
		s.expireRound(userID, onExpire)
	})
	if !s.rounds.put(userID, round) {
		round.timer.Stop()
		return BlackjackView{}, ErrRoundInProgress
	}
	return round.view(), nil
}

func (s *Service) expireRound(userID string, onExpire func()) {
	round, ok := s.rounds.get(userID)
	if !ok {
		return
	}
	round.mu.Lock()
	// a hit that raced this callback has already pushed the deadline out
	if round.state != RoundPlayerTurn || time.Now().Before(round.deadline) {
		round.mu.Unlock()
		return
	}
	round.state = RoundCancelled
	round.mu.Unlock()

	s.rounds.remove(userID)
	if onExpire != nil {
		onExpire()
	}
}

// BlackjackHit draws one card for the player. Busting settles the round
// immediately against the stake.
func (s *Service) BlackjackHit(ctx context.Context, userID string) (BlackjackView, error) {
	round, ok := s.rounds.get(userID)
	if !ok {
		return BlackjackView{}, ErrNoRound
	}
	round.mu.Lock()
	defer round.mu.Unlock()
	if round.state != RoundPlayerTurn {
		return BlackjackView{}, ErrNoRound
	}
	round.timer.Stop()

	drawn := round.draw()
	round.player = append(round.player, drawn)

	if handValue(round.player) > 21 {
		round.state = RoundResolved
		s.rounds.remove(userID)
		balance, err := s.repo.UpdateBalance(ctx, userID, round.stake.Neg())
		if err != nil {
			return BlackjackView{}, err
		}
		v := round.view()
		v.Drawn = drawn.String()
		v.Outcome = OutcomeBust
		v.NewBalance = balance
		return v, nil
	}

	round.deadline = time.Now().Add(blackjackTimeout)
	round.timer.Reset(blackjackTimeout)
	v := round.view()
	v.Drawn = drawn.String()
	return v, nil
}

// BlackjackStand ends the player's turn: the dealer draws to 17, the
// hands are compared, and the stake settles (push on equal totals).
func (s *Service) BlackjackStand(ctx context.Context, userID string) (BlackjackView, error) {
	round, ok := s.rounds.get(userID)
	if !ok {
		return BlackjackView{}, ErrNoRound
	}
	round.mu.Lock()
	defer round.mu.Unlock()
	if round.state != RoundPlayerTurn {
		return BlackjackView{}, ErrNoRound
	}
	round.timer.Stop()
	round.state = RoundDealerTurn

	for handValue(round.dealer) < 17 {
		round.dealer = append(round.dealer, round.draw())
	}
	round.state = RoundResolved
	s.rounds.remove(userID)

	playerVal := handValue(round.player)
	dealerVal := handValue(round.dealer)

	v := round.view()
	switch {
	case dealerVal > 21 || playerVal > dealerVal:
		balance, err := s.repo.UpdateBalance(ctx, userID, round.stake)
		if err != nil {
			return BlackjackView{}, err
		}
		v.Outcome = OutcomeWin
		v.NewBalance = balance
	case playerVal == dealerVal:
		account, err := s.repo.GetAccount(ctx, userID)
		if err != nil {
			return BlackjackView{}, err
		}
		v.Outcome = OutcomePush
		v.NewBalance = account.Balance
	default:
		balance, err := s.repo.UpdateBalance(ctx, userID, round.stake.Neg())
		if err != nil {
			return BlackjackView{}, err
		}
		v.Outcome = OutcomeLose
		v.NewBalance = balance
	}
	return v, nil
}

// HasBlackjackRound reports whether the player has an unfinished round,
// so the command surface can route "hit"/"stand" follow-ups.
func (s *Service) HasBlackjackRound(userID string) bool {
	_, ok := s.rounds.get(userID)
	return ok
}

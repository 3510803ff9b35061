package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the per-user economic record. Accounts are created lazily
// with a starting balance of 1000 on first reference and never deleted.
type Account struct {
	UserID    string
	Balance   decimal.Decimal
	Foxcoin   decimal.Decimal
	LastDaily *time.Time
	LastWork  *time.Time
	Pets      []string
	Inventory map[string]int
	CreatedAt time.Time
}

// PriceSample is one append-only entry in the foxcoin price history.
type PriceSample struct {
	RecordedAt time.Time
	Price      decimal.Decimal
}

// Transaction journals a completed transfer between two accounts.
type Transaction struct {
	ID        string
	FromUser  string
	ToUser    string
	Amount    decimal.Decimal
	Kind      string
	CreatedAt time.Time
}

// ShopItem is a static catalog entry.
type ShopItem struct {
	Price       decimal.Decimal
	Emoji       string
	Description string
}

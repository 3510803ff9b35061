package service

import (
	"context"

	"zerobot/models"

	"github.com/shopspring/decimal"
)

// shopItems is the static shop catalog. Edits ship with the binary.
var shopItems = map[string]models.ShopItem{
	"diamond": {Price: decimal.NewFromInt(5000), Emoji: "💎", Description: "Vật phẩm quý hiếm"},
	"gold":    {Price: decimal.NewFromInt(1000), Emoji: "🥇", Description: "Vàng nguyên chất"},
	"potion":  {Price: decimal.NewFromInt(300), Emoji: "🧪", Description: "Thuốc hồi phục"},
	"key":     {Price: decimal.NewFromInt(2000), Emoji: "🔑", Description: "Chìa khóa bí mật"},
}

// ShopCatalog returns the static shop item table.
func (s *Service) ShopCatalog() map[string]models.ShopItem {
	return shopItems
}

type ShopPurchase struct {
	Item       string
	Emoji      string
	Quantity   int
	Cost       decimal.Decimal
	NewBalance decimal.Decimal
}

// ShopBuy debits price x quantity and increments the owned quantity.
func (s *Service) ShopBuy(ctx context.Context, userID, item string, quantity int) (ShopPurchase, error) {
	detail, ok := shopItems[item]
	if !ok {
		return ShopPurchase{}, ErrUnknownItem
	}
	if quantity <= 0 {
		return ShopPurchase{}, ErrInvalidAmount
	}
	cost := detail.Price.Mul(decimal.NewFromInt(int64(quantity)))
	// materialize the buyer so a first-ever command gets the default balance
	if _, err := s.repo.GetAccount(ctx, userID); err != nil {
		return ShopPurchase{}, err
	}
	balance, err := s.repo.PurchaseItem(ctx, userID, item, quantity, cost)
	if err != nil {
		return ShopPurchase{}, err
	}
	return ShopPurchase{
		Item:       item,
		Emoji:      detail.Emoji,
		Quantity:   quantity,
		Cost:       cost,
		NewBalance: balance,
	}, nil
}

// ShopSell is a recognized action with no specified rule yet.
func (s *Service) ShopSell(ctx context.Context, userID, item string) error {
	return ErrShopSellUnsupported
}

// Inventory returns the caller's owned shop items.
func (s *Service) Inventory(ctx context.Context, userID string) (map[string]int, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account.Inventory, nil
}

package service

import (
	"context"

	"zerobot/repository"

	"github.com/shopspring/decimal"
)

// PetCatalog returns the static pet price table.
func (s *Service) PetCatalog() map[string]decimal.Decimal {
	return s.pets
}

type PetResult struct {
	Pet        string
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
	Pets       []string
}

func (s *Service) petPrice(name string) (decimal.Decimal, error) {
	price, ok := s.pets[name]
	if !ok {
		return decimal.Zero, ErrUnknownPet
	}
	return price, nil
}

// PetsBuy debits the catalog price and adds one instance to the
// caller's collection.
func (s *Service) PetsBuy(ctx context.Context, userID, pet string) (PetResult, error) {
	price, err := s.petPrice(pet)
	if err != nil {
		return PetResult{}, err
	}
	// materialize the buyer so a first-ever command gets the default balance
	if _, err := s.repo.GetAccount(ctx, userID); err != nil {
		return PetResult{}, err
	}
	balance, err := s.repo.PurchasePet(ctx, userID, pet, price)
	if err != nil {
		return PetResult{}, err
	}
	return s.petResult(ctx, userID, pet, price, balance)
}

// PetsSell removes one owned instance and credits 80% of the catalog
// price.
func (s *Service) PetsSell(ctx context.Context, userID, pet string) (PetResult, error) {
	price, err := s.petPrice(pet)
	if err != nil {
		return PetResult{}, err
	}
	refund := price.Mul(decimal.NewFromFloat(petResaleRate)).Round(2)
	balance, err := s.repo.SellPet(ctx, userID, pet, refund)
	if err != nil {
		return PetResult{}, err
	}
	return s.petResult(ctx, userID, pet, refund, balance)
}

// PetsFeed debits the fixed feed cost; the pet itself keeps no state.
func (s *Service) PetsFeed(ctx context.Context, userID, pet string) (PetResult, error) {
	if _, err := s.petPrice(pet); err != nil {
		return PetResult{}, err
	}
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return PetResult{}, err
	}
	if !contains(account.Pets, pet) {
		return PetResult{}, repository.ErrPetNotOwned
	}
	cost := decimal.NewFromInt(feedCost)
	balance, err := s.repo.UpdateBalance(ctx, userID, cost.Neg())
	if err != nil {
		return PetResult{}, err
	}
	return s.petResult(ctx, userID, pet, cost, balance)
}

// PetsGive moves one owned instance to another user's collection.
func (s *Service) PetsGive(ctx context.Context, fromUser, toUser, pet string) (PetResult, error) {
	if _, err := s.petPrice(pet); err != nil {
		return PetResult{}, err
	}
	if fromUser == toUser {
		return PetResult{}, ErrSelfTarget
	}
	// materialize the recipient before moving anything
	if _, err := s.repo.GetAccount(ctx, toUser); err != nil {
		return PetResult{}, err
	}
	if err := s.repo.TransferPet(ctx, fromUser, toUser, pet); err != nil {
		return PetResult{}, err
	}
	account, err := s.repo.GetAccount(ctx, fromUser)
	if err != nil {
		return PetResult{}, err
	}
	return PetResult{Pet: pet, NewBalance: account.Balance, Pets: account.Pets}, nil
}

func (s *Service) petResult(
	ctx context.Context,
	userID, pet string,
	amount, balance decimal.Decimal,
) (PetResult, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return PetResult{}, err
	}
	return PetResult{Pet: pet, Amount: amount, NewBalance: balance, Pets: account.Pets}, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

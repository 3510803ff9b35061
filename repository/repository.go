package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"zerobot/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds   = errors.New("số dư không đủ")
	ErrInsufficientFoxcoin = errors.New("số foxcoin không đủ")
	ErrPetNotOwned         = errors.New("không sở hữu pet này")
	ErrNoPrice             = errors.New("chưa có giá foxcoin")
)

const startingBalance = "1000"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) PostgresRepository {
	return PostgresRepository{db: db}
}

// EnsureSchema creates all tables on a fresh database. Idempotent.
func (r PostgresRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			user_id TEXT PRIMARY KEY,
			balance NUMERIC NOT NULL,
			foxcoin NUMERIC NOT NULL DEFAULT 0,
			last_daily TIMESTAMPTZ,
			last_work TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pets (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			user_id TEXT NOT NULL,
			item TEXT NOT NULL,
			quantity INT NOT NULL,
			PRIMARY KEY (user_id, item)
		)`,
		`CREATE TABLE IF NOT EXISTS price_history (
			recorded_at TIMESTAMPTZ NOT NULL,
			price NUMERIC NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			from_user TEXT NOT NULL,
			to_user TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			kind TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("tạo bảng: %w", err)
		}
	}
	return nil
}

// GetAccount returns the account for userID, creating the default record
// (balance 1000, no holdings) on first reference.
func (r PostgresRepository) GetAccount(
	ctx context.Context,
	userID string,
) (models.Account, error) {
	a, err := r.scanAccount(r.db.QueryRowContext(
		ctx,
		"SELECT user_id, balance, foxcoin, last_daily, last_work, created_at "+
			"FROM accounts WHERE user_id=$1",
		userID,
	))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, err
		}
		a, err = r.scanAccount(r.db.QueryRowContext(
			ctx,
			"INSERT INTO accounts (user_id, balance, foxcoin, created_at) "+
				"VALUES ($1, "+startingBalance+", 0, $2) "+
				"RETURNING user_id, balance, foxcoin, last_daily, last_work, created_at",
			userID, time.Now().UTC(),
		))
		if err != nil {
			return models.Account{}, err
		}
	}

	if a.Pets, err = r.listPets(ctx, userID); err != nil {
		return models.Account{}, err
	}
	if a.Inventory, err = r.listInventory(ctx, userID); err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// ListAccounts returns every account in creation order. Pets and
// inventory are not loaded; callers only need balances and holdings.
func (r PostgresRepository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT user_id, balance, foxcoin, last_daily, last_work, created_at "+
			"FROM accounts ORDER BY created_at, user_id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		a, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateBalance applies delta to a single balance under a row lock,
// rejecting any result below zero before anything is written.
func (r PostgresRepository) UpdateBalance(
	ctx context.Context,
	userID string,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	var balance decimal.Decimal
	err = tx.QueryRowContext(
		ctx,
		"SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE",
		userID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}

	_, err = tx.ExecContext(
		ctx,
		"UPDATE accounts SET balance=$1 WHERE user_id=$2",
		newBalance, userID,
	)
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, tx.Commit()
}

// UpdateHoldings applies a balance delta and a foxcoin delta to one
// account in a single transaction (foxcoin buy/sell).
func (r PostgresRepository) UpdateHoldings(
	ctx context.Context,
	userID string,
	balanceDelta, foxcoinDelta decimal.Decimal,
) (models.Account, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Account{}, err
	}
	defer tx.Rollback()

	a, err := r.scanAccount(tx.QueryRowContext(
		ctx,
		"SELECT user_id, balance, foxcoin, last_daily, last_work, created_at "+
			"FROM accounts WHERE user_id=$1 FOR UPDATE",
		userID,
	))
	if err != nil {
		return models.Account{}, err
	}

	a.Balance = a.Balance.Add(balanceDelta)
	a.Foxcoin = a.Foxcoin.Add(foxcoinDelta)
	if a.Balance.IsNegative() {
		return models.Account{}, ErrInsufficientFunds
	}
	if a.Foxcoin.IsNegative() {
		return models.Account{}, ErrInsufficientFoxcoin
	}

	_, err = tx.ExecContext(
		ctx,
		"UPDATE accounts SET balance=$1, foxcoin=$2 WHERE user_id=$3",
		a.Balance, a.Foxcoin, userID,
	)
	if err != nil {
		return models.Account{}, err
	}
	return a, tx.Commit()
}

// Transfer moves amount between two balances atomically and journals
// the movement. Rows are locked in key order so two opposing transfers
// cannot deadlock.
func (r PostgresRepository) Transfer(
	ctx context.Context,
	fromUser, toUser string,
	amount decimal.Decimal,
	kind string,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	first, second := fromUser, toUser
	if second < first {
		first, second = second, first
	}
	balances := map[string]decimal.Decimal{}
	for _, id := range []string{first, second} {
		var b decimal.Decimal
		err = tx.QueryRowContext(
			ctx,
			"SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE",
			id,
		).Scan(&b)
		if err != nil {
			return err
		}
		balances[id] = b
	}

	newFrom := balances[fromUser].Sub(amount)
	if newFrom.IsNegative() {
		return ErrInsufficientFunds
	}

	_, err = tx.ExecContext(
		ctx,
		"UPDATE accounts SET balance=$1 WHERE user_id=$2",
		newFrom, fromUser,
	)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		"UPDATE accounts SET balance=$1 WHERE user_id=$2",
		balances[toUser].Add(amount), toUser,
	)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		"INSERT INTO transactions (id, from_user, to_user, amount, kind, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6)",
		uuid.New(), fromUser, toUser, amount, kind, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// CreditDaily credits the daily reward and stamps last_daily in one
// transaction. The cooldown check is the caller's job.
func (r PostgresRepository) CreditDaily(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
	at time.Time,
) (decimal.Decimal, error) {
	return r.creditStamped(ctx, userID, amount, "last_daily", at)
}

// CreditWork credits work earnings and stamps last_work.
func (r PostgresRepository) CreditWork(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
	at time.Time,
) (decimal.Decimal, error) {
	return r.creditStamped(ctx, userID, amount, "last_work", at)
}

func (r PostgresRepository) creditStamped(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
	column string,
	at time.Time,
) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(
		ctx,
		"UPDATE accounts SET balance=balance+$1, "+column+"=$2 WHERE user_id=$3 "+
			"RETURNING balance",
		amount, at, userID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// PurchasePet debits the price and adds one pet instance in a single
// transaction, so a failed insert never leaves a paid-for nothing.
func (r PostgresRepository) PurchasePet(
	ctx context.Context,
	userID, name string,
	cost decimal.Decimal,
) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	balance, err := r.debitLocked(ctx, tx, userID, cost)
	if err != nil {
		return decimal.Zero, err
	}
	_, err = tx.ExecContext(
		ctx,
		"INSERT INTO pets (user_id, name) VALUES ($1, $2)",
		userID, name,
	)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, tx.Commit()
}

// SellPet deletes exactly one owned instance of the named pet and
// credits the refund atomically.
func (r PostgresRepository) SellPet(
	ctx context.Context,
	userID, name string,
	refund decimal.Decimal,
) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		"DELETE FROM pets WHERE id = ("+
			"SELECT id FROM pets WHERE user_id=$1 AND name=$2 LIMIT 1)",
		userID, name,
	)
	if err != nil {
		return decimal.Zero, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return decimal.Zero, err
	}
	if n == 0 {
		return decimal.Zero, ErrPetNotOwned
	}

	var balance decimal.Decimal
	err = tx.QueryRowContext(
		ctx,
		"UPDATE accounts SET balance=balance+$1 WHERE user_id=$2 RETURNING balance",
		refund, userID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, tx.Commit()
}

// TransferPet moves one instance of the named pet between collections.
func (r PostgresRepository) TransferPet(
	ctx context.Context,
	fromUser, toUser, name string,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		"UPDATE pets SET user_id=$1 WHERE id = ("+
			"SELECT id FROM pets WHERE user_id=$2 AND name=$3 LIMIT 1)",
		toUser, fromUser, name,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPetNotOwned
	}
	return tx.Commit()
}

// PurchaseItem debits the total cost and increments the owned quantity
// of a shop item in a single transaction.
func (r PostgresRepository) PurchaseItem(
	ctx context.Context,
	userID, item string,
	quantity int,
	cost decimal.Decimal,
) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	balance, err := r.debitLocked(ctx, tx, userID, cost)
	if err != nil {
		return decimal.Zero, err
	}

	var current int
	err = tx.QueryRowContext(
		ctx,
		"SELECT quantity FROM inventory WHERE user_id=$1 AND item=$2",
		userID, item,
	).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(
			ctx,
			"INSERT INTO inventory (user_id, item, quantity) VALUES ($1, $2, $3)",
			userID, item, quantity,
		)
	case err == nil:
		_, err = tx.ExecContext(
			ctx,
			"UPDATE inventory SET quantity = quantity + $1 WHERE user_id=$2 AND item=$3",
			quantity, userID, item,
		)
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, tx.Commit()
}

// debitLocked subtracts cost from a row-locked balance inside tx,
// rejecting any result below zero before anything is written.
func (r PostgresRepository) debitLocked(
	ctx context.Context,
	tx *sql.Tx,
	userID string,
	cost decimal.Decimal,
) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRowContext(
		ctx,
		"SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE",
		userID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}
	newBalance := balance.Sub(cost)
	if newBalance.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}
	_, err = tx.ExecContext(
		ctx,
		"UPDATE accounts SET balance=$1 WHERE user_id=$2",
		newBalance, userID,
	)
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// LatestPrice returns the newest price sample, or ErrNoPrice when the
// series has never been seeded.
func (r PostgresRepository) LatestPrice(ctx context.Context) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(
		ctx,
		"SELECT price FROM price_history ORDER BY recorded_at DESC LIMIT 1",
	).Scan(&price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrNoPrice
		}
		return decimal.Zero, err
	}
	return price, nil
}

func (r PostgresRepository) AppendPrice(
	ctx context.Context,
	sample models.PriceSample,
) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO price_history (recorded_at, price) VALUES ($1, $2)",
		sample.RecordedAt, sample.Price,
	)
	return err
}

// PriceHistory returns up to limit samples, oldest first.
func (r PostgresRepository) PriceHistory(
	ctx context.Context,
	limit int,
) ([]models.PriceSample, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT recorded_at, price FROM ("+
			"SELECT recorded_at, price FROM price_history "+
			"ORDER BY recorded_at DESC LIMIT $1) t ORDER BY recorded_at",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.PriceSample
	for rows.Next() {
		var s models.PriceSample
		if err := rows.Scan(&s.RecordedAt, &s.Price); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// TotalSupply sums foxcoin holdings across every account.
func (r PostgresRepository) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	var supply decimal.Decimal
	err := r.db.QueryRowContext(
		ctx,
		"SELECT COALESCE(SUM(foxcoin), 0) FROM accounts",
	).Scan(&supply)
	if err != nil {
		return decimal.Zero, err
	}
	return supply, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r PostgresRepository) scanAccount(row rowScanner) (models.Account, error) {
	var (
		a                   models.Account
		lastDaily, lastWork sql.NullTime
	)
	err := row.Scan(&a.UserID, &a.Balance, &a.Foxcoin, &lastDaily, &lastWork, &a.CreatedAt)
	if err != nil {
		return models.Account{}, err
	}
	if lastDaily.Valid {
		t := lastDaily.Time
		a.LastDaily = &t
	}
	if lastWork.Valid {
		t := lastWork.Time
		a.LastWork = &t
	}
	return a, nil
}

func (r PostgresRepository) listPets(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT name FROM pets WHERE user_id=$1 ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		pets = append(pets, name)
	}
	return pets, rows.Err()
}

func (r PostgresRepository) listInventory(
	ctx context.Context,
	userID string,
) (map[string]int, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT item, quantity FROM inventory WHERE user_id=$1",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inventory := make(map[string]int)
	for rows.Next() {
		var (
			item     string
			quantity int
		)
		if err := rows.Scan(&item, &quantity); err != nil {
			return nil, err
		}
		inventory[item] = quantity
	}
	return inventory, rows.Err()
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func accountRow(userID, balance, foxcoin string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"user_id", "balance", "foxcoin", "last_daily", "last_work", "created_at"},
	).AddRow(userID, balance, foxcoin, nil, nil, createdAt)
}

func TestGetAccountExisting(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(
		"SELECT user_id, balance, foxcoin, last_daily, last_work, created_at "+
			"FROM accounts WHERE user_id=$1").
		WithArgs("u1").
		WillReturnRows(accountRow("u1", "1500", "2.5", createdAt))
	mock.ExpectQuery("SELECT name FROM pets WHERE user_id=$1 ORDER BY id").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("fox").AddRow("cat"))
	mock.ExpectQuery("SELECT item, quantity FROM inventory WHERE user_id=$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"item", "quantity"}).AddRow("diamond", 2))

	a, err := repo.GetAccount(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", a.UserID)
	require.True(t, a.Balance.Equal(decimal.RequireFromString("1500")))
	require.True(t, a.Foxcoin.Equal(decimal.RequireFromString("2.5")))
	require.Nil(t, a.LastDaily)
	require.Equal(t, []string{"fox", "cat"}, a.Pets)
	require.Equal(t, map[string]int{"diamond": 2}, a.Inventory)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountCreatesDefault(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Now().UTC()

	mock.ExpectQuery(
		"SELECT user_id, balance, foxcoin, last_daily, last_work, created_at "+
			"FROM accounts WHERE user_id=$1").
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "balance", "foxcoin", "last_daily", "last_work", "created_at"},
		))
	mock.ExpectQuery(
		"INSERT INTO accounts (user_id, balance, foxcoin, created_at) "+
			"VALUES ($1, 1000, 0, $2) "+
			"RETURNING user_id, balance, foxcoin, last_daily, last_work, created_at").
		WithArgs("fresh", sqlmock.AnyArg()).
		WillReturnRows(accountRow("fresh", "1000", "0", createdAt))
	mock.ExpectQuery("SELECT name FROM pets WHERE user_id=$1 ORDER BY id").
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectQuery("SELECT item, quantity FROM inventory WHERE user_id=$1").
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows([]string{"item", "quantity"}))

	a, err := repo.GetAccount(context.Background(), "fresh")
	require.NoError(t, err)
	require.True(t, a.Balance.Equal(decimal.NewFromInt(1000)))
	require.True(t, a.Foxcoin.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		delta   string
		want    string
		wantErr error
	}{
		{name: "credit", balance: "100", delta: "50", want: "150"},
		{name: "debit to zero", balance: "100", delta: "-100", want: "0"},
		{name: "overdraft rejected", balance: "100", delta: "-200", wantErr: ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectBegin()
			mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
				WithArgs("u1").
				WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(tt.balance))
			if tt.wantErr == nil {
				mock.ExpectExec("UPDATE accounts SET balance=$1 WHERE user_id=$2").
					WithArgs(decimal.RequireFromString(tt.want), "u1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			got, err := repo.UpdateBalance(
				context.Background(), "u1", decimal.RequireFromString(tt.delta),
			)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.True(t, got.Equal(decimal.RequireFromString(tt.want)))
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateHoldingsRejectsNegativeFoxcoin(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(
		"SELECT user_id, balance, foxcoin, last_daily, last_work, created_at "+
			"FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(accountRow("u1", "1000", "1", createdAt))
	mock.ExpectRollback()

	_, err := repo.UpdateHoldings(
		context.Background(), "u1",
		decimal.NewFromInt(20), decimal.NewFromInt(-2),
	)
	require.ErrorIs(t, err, ErrInsufficientFoxcoin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferInsufficientFunds(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("30"))
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("500"))
	mock.ExpectRollback()

	err := repo.Transfer(
		context.Background(), "alice", "bob", decimal.NewFromInt(100), "give",
	)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferLocksInKeyOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	// sender sorts after recipient, so the recipient row locks first
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("500"))
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("200"))
	mock.ExpectExec("UPDATE accounts SET balance=$1 WHERE user_id=$2").
		WithArgs(decimal.NewFromInt(100), "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET balance=$1 WHERE user_id=$2").
		WithArgs(decimal.NewFromInt(600), "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(
		"INSERT INTO transactions (id, from_user, to_user, amount, kind, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6)").
		WithArgs(sqlmock.AnyArg(), "bob", "alice", decimal.NewFromInt(100), "give", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Transfer(
		context.Background(), "bob", "alice", decimal.NewFromInt(100), "give",
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditDailyStampsAndReturnsBalance(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(
		"UPDATE accounts SET balance=balance+$1, last_daily=$2 WHERE user_id=$3 "+
			"RETURNING balance").
		WithArgs(decimal.NewFromInt(500), at, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("1500"))

	got, err := repo.CreditDaily(context.Background(), "u1", decimal.NewFromInt(500), at)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(1500)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseItemDebitsAndUpsertsInOneTx(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("1000"))
	mock.ExpectExec("UPDATE accounts SET balance=$1 WHERE user_id=$2").
		WithArgs(decimal.NewFromInt(400), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT quantity FROM inventory WHERE user_id=$1 AND item=$2").
		WithArgs("u1", "potion").
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))
	mock.ExpectExec("INSERT INTO inventory (user_id, item, quantity) VALUES ($1, $2, $3)").
		WithArgs("u1", "potion", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.PurchaseItem(
		context.Background(), "u1", "potion", 2, decimal.NewFromInt(600),
	)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(400)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseItemOverdraftRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100"))
	mock.ExpectRollback()

	_, err := repo.PurchaseItem(
		context.Background(), "u1", "diamond", 1, decimal.NewFromInt(5000),
	)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchasePetDebitsAndInsertsInOneTx(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("2500"))
	mock.ExpectExec("UPDATE accounts SET balance=$1 WHERE user_id=$2").
		WithArgs(decimal.NewFromInt(500), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO pets (user_id, name) VALUES ($1, $2)").
		WithArgs("u1", "fox").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	got, err := repo.PurchasePet(
		context.Background(), "u1", "fox", decimal.NewFromInt(2000),
	)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(500)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSellPetNotOwnedRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(
		"DELETE FROM pets WHERE id = ("+
			"SELECT id FROM pets WHERE user_id=$1 AND name=$2 LIMIT 1)").
		WithArgs("u1", "dragon").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.SellPet(context.Background(), "u1", "dragon", decimal.NewFromInt(800))
	require.ErrorIs(t, err, ErrPetNotOwned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSellPetCreditsRefund(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(
		"DELETE FROM pets WHERE id = ("+
			"SELECT id FROM pets WHERE user_id=$1 AND name=$2 LIMIT 1)").
		WithArgs("u1", "fox").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(
		"UPDATE accounts SET balance=balance+$1 WHERE user_id=$2 RETURNING balance").
		WithArgs(decimal.NewFromInt(1600), "u1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("2600"))
	mock.ExpectCommit()

	got, err := repo.SellPet(context.Background(), "u1", "fox", decimal.NewFromInt(1600))
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(2600)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestPriceEmptySeries(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT price FROM price_history ORDER BY recorded_at DESC LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{"price"}))

	_, err := repo.LatestPrice(context.Background())
	require.ErrorIs(t, err, ErrNoPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalSupply(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COALESCE(SUM(foxcoin), 0) FROM accounts").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("12345.67"))

	supply, err := repo.TotalSupply(context.Background())
	require.NoError(t, err)
	require.True(t, supply.Equal(decimal.RequireFromString("12345.67")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceHistoryOrdersOldestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	t1 := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)

	mock.ExpectQuery(
		"SELECT recorded_at, price FROM ("+
			"SELECT recorded_at, price FROM price_history "+
			"ORDER BY recorded_at DESC LIMIT $1) t ORDER BY recorded_at").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"recorded_at", "price"}).
			AddRow(t1, "10.0").
			AddRow(t2, "10.05"))

	samples, err := repo.PriceHistory(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	require.Equal(t, t1, samples[0].RecordedAt)
	require.True(t, samples[1].Price.Equal(decimal.RequireFromString("10.05")))
	require.NoError(t, mock.ExpectationsWereMet())
}

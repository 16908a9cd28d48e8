package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"rocketshop/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func TestListPurchases(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "username", "purchased_at", "product", "amount", "price", "status", "order_id", "created_at"}).
		AddRow(2, "player", now, "Fortnite", "2800 V-Bucks", 1299, models.PurchaseStatusPending, "abc-3", now).
		AddRow(1, "player", now.Add(-time.Hour), "Roblox", "1700 Robux", 1590, models.PurchaseStatusCompleted, "", now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM purchases WHERE username = $1")).
		WithArgs("player").
		WillReturnRows(rows)

	purchases, err := store.ListPurchases(ctx, "player")
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, int64(2), purchases[0].ID)
	assert.Equal(t, int64(1299), purchases[0].Price)
	assert.Equal(t, models.PurchaseStatusCompleted, purchases[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPurchasesError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM purchases")).
		WithArgs("player").
		WillReturnError(errors.New("connection reset"))

	_, err := store.ListPurchases(context.Background(), "player")
	assert.Error(t, err)
}

func TestRecordOrderPurchases(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	purchases := []models.Purchase{
		{Username: "player", Date: now, Product: "Fortnite", Amount: "2800 V-Bucks", Price: 1299, Status: models.PurchaseStatusPending},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recorded_orders")).
		WithArgs("abc-3", "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO purchases")).
		WithArgs("player", now, "Fortnite", "2800 V-Bucks", int64(1299), models.PurchaseStatusPending, "abc-3").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	recorded, err := store.RecordOrderPurchases(context.Background(), "abc-3", "evt-1", purchases)
	require.NoError(t, err)
	assert.True(t, recorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOrderPurchasesAlreadyRecorded(t *testing.T) {
	store, mock := newMockStore(t)

	// a second event for the same order finds the order row and writes nothing
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recorded_orders")).
		WithArgs("abc-3", "evt-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	recorded, err := store.RecordOrderPurchases(context.Background(), "abc-3", "evt-2", []models.Purchase{{Username: "player"}})
	require.NoError(t, err)
	assert.False(t, recorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProducts(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "game", "category", "price", "original_price", "platform", "amount", "description", "popular", "delivery_time", "image"}).
		AddRow(1, "Robux 1700", "Roblox", "Игровая валюта", 1590, nil, "PC", "1700 Robux", "", true, "", "/img/roblox.jpg").
		AddRow(2, "V-Bucks 2800", "Fortnite", "Игровая валюта", 1299, 1599, "PlayStation", "2800 V-Bucks", "", false, "10-30 минут", "/img/fortnite.jpg")

	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY id")).WillReturnRows(rows)

	products, err := store.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Nil(t, products[0].OriginalPrice)
	require.NotNil(t, products[1].OriginalPrice)
	assert.Equal(t, int64(1599), *products[1].OriginalPrice)
}

func TestMigrate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Migrate(context.Background()))
}

package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rocketshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	s := New("s1", "player", 20, time.Now())
	s.Cart.Add(models.Product{ID: 1, Price: 100})
	require.NoError(t, store.Save(ctx, s))

	s.Cart.UpdateQuantity(1, 5)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Cart.Lines[0].Quantity)

	got.Cart.Add(models.Product{ID: 2, Price: 50})
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Cart.Lines, 1)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, New("s1", "player", 20, now)))

	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, New("s1", "player", 20, time.Now())))
	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryLockerTimeout(t *testing.T) {
	locker := NewMemoryLocker()

	unlock, err := locker.Lock(context.Background(), "s1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	unlock, err = locker.Lock(context.Background(), "s1")
	require.NoError(t, err)
	unlock()
}

func TestSessionJSONRoundTrip(t *testing.T) {
	s := New("s1", "player", 20, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Cart.Add(models.Product{ID: 1, Price: 100})
	s.Discount.Activate()

	_, err := s.Checkout.Choose("sber")
	assert.Error(t, err)
	require.NoError(t, s.Checkout.Open(&s.Cart))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var got Session
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, s.Totals(), got.Totals())
	assert.Equal(t, s.Checkout, got.Checkout)
	assert.Equal(t, s.Filters, got.Filters)
	assert.True(t, got.CreatedAt.Equal(s.CreatedAt))
}

package state

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/kiranalabs/pos/internal/errors"
)

func TestStoreUnknownCart(t *testing.T) {
	store := NewStore()

	_, err := store.Render(uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)

	_, err = store.AddItem(uuid.New(), 1, "Red T-Shirt", decimal.NewFromInt(250))
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)

	_, err = store.BeginCheckout(uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)
}

func TestBeginCheckoutEmptyCart(t *testing.T) {
	store := NewStore()
	cart := store.Open()

	_, err := store.BeginCheckout(cart.ID)
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
}

func TestBeginCheckoutRejectsSecondAttempt(t *testing.T) {
	store := NewStore()
	cart := store.Open()
	_, err := store.AddItem(cart.ID, 1, "Red T-Shirt", decimal.NewFromInt(250))
	require.NoError(t, err)

	lines, err := store.BeginCheckout(cart.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	_, err = store.BeginCheckout(cart.ID)
	assert.ErrorIs(t, err, inErrors.ErrCheckoutInFlight)
}

func TestCompleteCheckoutDropsCart(t *testing.T) {
	store := NewStore()
	cart := store.Open()
	_, err := store.AddItem(cart.ID, 1, "Red T-Shirt", decimal.NewFromInt(250))
	require.NoError(t, err)

	_, err = store.BeginCheckout(cart.ID)
	require.NoError(t, err)

	store.CompleteCheckout(cart.ID)

	// The settled cart is gone; the next sale opens a fresh one.
	_, err = store.Render(cart.ID)
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)
	_, err = store.AddItem(cart.ID, 2, "Blue Jeans", decimal.NewFromInt(1200))
	assert.ErrorIs(t, err, inErrors.ErrCartNotFound)

	next := store.Open()
	assert.NotEqual(t, cart.ID, next.ID)
	_, err = store.AddItem(next.ID, 2, "Blue Jeans", decimal.NewFromInt(1200))
	assert.NoError(t, err)
}

func TestCompleteCheckoutDoesNotAccumulateCarts(t *testing.T) {
	store := NewStore()
	for i := 0; i < 100; i++ {
		cart := store.Open()
		_, err := store.AddItem(cart.ID, 1, "Red T-Shirt", decimal.NewFromInt(250))
		require.NoError(t, err)
		_, err = store.BeginCheckout(cart.ID)
		require.NoError(t, err)
		store.CompleteCheckout(cart.ID)
	}

	assert.Empty(t, store.carts)
}

func TestAbortCheckoutKeepsLines(t *testing.T) {
	store := NewStore()
	cart := store.Open()
	_, err := store.AddItem(cart.ID, 1, "Red T-Shirt", decimal.NewFromInt(250))
	require.NoError(t, err)
	_, err = store.AddItem(cart.ID, 1, "Red T-Shirt", decimal.NewFromInt(250))
	require.NoError(t, err)

	_, err = store.BeginCheckout(cart.ID)
	require.NoError(t, err)

	store.AbortCheckout(cart.ID)

	rendered, err := store.Render(cart.ID)
	require.NoError(t, err)
	require.Len(t, rendered.Lines, 1)
	assert.EqualValues(t, 2, rendered.Lines[0].Quantity)

	// A retry is allowed after the failed attempt.
	lines, err := store.BeginCheckout(cart.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

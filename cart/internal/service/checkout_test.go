package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranalabs/pos/cart/internal/state"
	"github.com/kiranalabs/pos/internal/common/constants"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/repository"
)

func TestCheckout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	pool, pgContainer, queries, cartService := setup(t)(c)
	defer teardown(t)(pool, pgContainer)

	shirt, err := queries.InsertProduct(c, repository.InsertProductParams{
		Name:  "Red T-Shirt",
		Price: repository.NumericFromDecimal(decimal.RequireFromString("250.00")),
		Stock: 5,
	})
	require.NoError(t, err)
	jeans, err := queries.InsertProduct(c, repository.InsertProductParams{
		Name:  "Blue Jeans",
		Price: repository.NumericFromDecimal(decimal.RequireFromString("1200.00")),
		Stock: 2,
	})
	require.NoError(t, err)

	t.Run("settles sale and decrements stock", func(t *testing.T) {
		result, err := cartService.Checkout(c, CheckoutOrder{
			Lines: []state.Line{
				{ProductID: shirt.ID, Name: shirt.Name, Quantity: 2},
				{ProductID: jeans.ID, Name: jeans.Name, Quantity: 1},
			},
			PaymentMethod: constants.StatusCash,
		})
		require.NoError(t, err)
		require.NotZero(t, result.TransactionID)

		transaction, err := queries.FindTransactionById(c, result.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusCash, transaction.Status)
		assert.True(
			t,
			decimal.RequireFromString("1700.00").
				Equal(repository.DecimalFromNumeric(transaction.Amount)),
		)
		assert.True(
			t,
			decimal.RequireFromString("1190.00").
				Equal(repository.DecimalFromNumeric(transaction.Cost)),
		)

		items, err := queries.FindTransactionItems(c, result.TransactionID)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		remaining, err := queries.FindProductById(c, shirt.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, remaining.Stock)
	})

	t.Run("rejects shortfall and rolls back", func(t *testing.T) {
		before, err := queries.FindTransactions(c)
		require.NoError(t, err)

		_, err = cartService.Checkout(c, CheckoutOrder{
			Lines: []state.Line{
				{ProductID: shirt.ID, Name: shirt.Name, Quantity: 1},
				{ProductID: jeans.ID, Name: jeans.Name, Quantity: 99},
			},
			PaymentMethod: constants.StatusCash,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, inErrors.ErrInsufficientStock)

		after, err := queries.FindTransactions(c)
		require.NoError(t, err)
		assert.Len(t, after, len(before))

		remaining, err := queries.FindProductById(c, shirt.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, remaining.Stock)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := cartService.Checkout(c, CheckoutOrder{
			Lines:         []state.Line{},
			PaymentMethod: constants.StatusCash,
		})
		assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		_, err := cartService.Checkout(c, CheckoutOrder{
			Lines:         []state.Line{{ProductID: 9999, Name: "Ghost", Quantity: 1}},
			PaymentMethod: constants.StatusCash,
		})
		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})
}

package state

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/kiranalabs/pos/internal/errors"
)

func TestAddItemAggregatesQuantity(t *testing.T) {
	cart := NewCart()

	cart.AddItem(1, "Red T-Shirt", decimal.NewFromInt(10))
	line := cart.AddItem(1, "Red T-Shirt", decimal.NewFromInt(10))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.EqualValues(t, 2, line.Quantity)
	assert.True(t, decimal.NewFromInt(20).Equal(cart.Subtotal()))

	rendered := cart.Render()
	assert.Equal(t, "₹ 20.00", rendered.SubtotalDisplay)
	assert.Equal(t, "₹ 20.00", rendered.GrandTotalDisplay)
}

func TestAddItemKeepsOneLinePerProduct(t *testing.T) {
	cart := NewCart()

	cart.AddItem(1, "Red T-Shirt", decimal.NewFromInt(250))
	cart.AddItem(2, "Blue Jeans", decimal.NewFromInt(1200))
	cart.AddItem(1, "Red T-Shirt", decimal.NewFromInt(250))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.EqualValues(t, 2, lines[0].Quantity)
	assert.EqualValues(t, 1, lines[1].Quantity)
	assert.True(t, decimal.NewFromInt(1700).Equal(cart.Subtotal()))
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name             string
		quantity         int32
		expectedLines    int
		expectedQuantity int32
	}{
		{name: "positive quantity replaces the line quantity", quantity: 5, expectedLines: 1, expectedQuantity: 5},
		{name: "zero quantity removes the line", quantity: 0, expectedLines: 0},
		{name: "negative quantity removes the line", quantity: -1, expectedLines: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			cart.AddItem(1, "Red T-Shirt", decimal.NewFromInt(250))

			err := cart.SetQuantity(1, tt.quantity)
			require.NoError(t, err)

			lines := cart.Lines()
			require.Len(t, lines, tt.expectedLines)
			if tt.expectedLines > 0 {
				assert.Equal(t, tt.expectedQuantity, lines[0].Quantity)
			}
		})
	}
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	cart := NewCart()
	err := cart.SetQuantity(99, 3)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart()
	cart.AddItem(1, "Red T-Shirt", decimal.NewFromInt(250))
	cart.AddItem(2, "Blue Jeans", decimal.NewFromInt(1200))

	err := cart.RemoveItem(1)
	require.NoError(t, err)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.EqualValues(t, 2, lines[0].ProductID)

	err = cart.RemoveItem(1)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestGrandTotalEqualsSubtotal(t *testing.T) {
	cart := NewCart()
	cart.AddItem(1, "Red T-Shirt", decimal.RequireFromString("250.50"))
	cart.AddItem(2, "Blue Jeans", decimal.NewFromInt(1200))
	cart.AddItem(1, "Red T-Shirt", decimal.RequireFromString("250.50"))

	assert.True(t, cart.Subtotal().Equal(cart.GrandTotal()))
	assert.True(t, decimal.RequireFromString("1701.00").Equal(cart.GrandTotal()))
}

func TestRenderEmptyCart(t *testing.T) {
	cart := NewCart()

	rendered := cart.Render()

	assert.Empty(t, rendered.Lines)
	assert.True(t, cart.Empty())
	assert.Equal(t, "₹ 0.00", rendered.SubtotalDisplay)
	assert.Equal(t, "₹ 0.00", rendered.GrandTotalDisplay)
}

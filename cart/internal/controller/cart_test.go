package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiranalabs/pos/cart/internal/service"
	"github.com/kiranalabs/pos/cart/internal/state"
	inErrors "github.com/kiranalabs/pos/internal/errors"
)

func TestCheckoutStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "empty cart is a register mistake",
			err:      inErrors.ErrEmptyCart,
			expected: http.StatusBadRequest,
		},
		{
			name:     "insufficient stock is a register mistake",
			err:      fmt.Errorf("%w for Blue Jeans", inErrors.ErrInsufficientStock),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown product is a register mistake",
			err:      fmt.Errorf("productId=9999 with error=%w", inErrors.ErrProductNotFound),
			expected: http.StatusBadRequest,
		},
		{
			name:     "missing cart is a register mistake",
			err:      inErrors.ErrCartNotFound,
			expected: http.StatusBadRequest,
		},
		{
			name:     "checkout already running is a register mistake",
			err:      inErrors.ErrCheckoutInFlight,
			expected: http.StatusBadRequest,
		},
		{
			name:     "database failure is a backend failure",
			err:      fmt.Errorf("failed inserting transaction with error=%w", assert.AnError),
			expected: http.StatusInternalServerError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, checkoutStatusCode(test.err))
		})
	}
}

func TestCheckoutEmptyCartResponse(t *testing.T) {
	cartService := service.NewCartService(nil, nil, state.NewStore())
	controller := CartController{service: &cartService}

	body := `{"cart": [], "customer_id": null, "payment_method": "cash"}`
	r := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	w := httptest.NewRecorder()

	controller.Checkout(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success": false, "message": "Cart is empty."}`, w.Body.String())
}

package request

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutRequestDecoding(t *testing.T) {
	body := `{
		"cart": [{"id": 1, "qty": 2, "name": "Red T-Shirt", "price": 250.00}],
		"customer_id": 3,
		"payment_method": "credit"
	}`

	reqBody := Checkout{}
	err := json.Unmarshal([]byte(body), &reqBody)
	require.NoError(t, err)

	require.Len(t, reqBody.Cart, 1)
	assert.EqualValues(t, 1, reqBody.Cart[0].ID)
	assert.EqualValues(t, 2, reqBody.Cart[0].Qty)
	assert.True(t, decimal.RequireFromString("250.00").Equal(reqBody.Cart[0].Price))
	require.NotNil(t, reqBody.CustomerID)
	assert.EqualValues(t, 3, *reqBody.CustomerID)
	assert.Equal(t, "credit", reqBody.PaymentMethod)
}

func TestCheckoutRequestNullCustomer(t *testing.T) {
	body := `{"cart": [{"id": 1, "qty": 1}], "customer_id": null, "payment_method": "cash"}`

	reqBody := Checkout{}
	err := json.Unmarshal([]byte(body), &reqBody)
	require.NoError(t, err)
	assert.Nil(t, reqBody.CustomerID)
}

func TestCheckoutRequestValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	tests := []struct {
		name        string
		reqBody     Checkout
		expectError bool
	}{
		{
			name: "valid cash checkout",
			reqBody: Checkout{
				Cart:          []CheckoutLine{{ID: 1, Qty: 2}},
				PaymentMethod: "cash",
			},
			expectError: false,
		},
		{
			name: "unknown payment method",
			reqBody: Checkout{
				Cart:          []CheckoutLine{{ID: 1, Qty: 2}},
				PaymentMethod: "upi",
			},
			expectError: true,
		},
		{
			name: "missing payment method",
			reqBody: Checkout{
				Cart: []CheckoutLine{{ID: 1, Qty: 2}},
			},
			expectError: true,
		},
		{
			name: "zero quantity line",
			reqBody: Checkout{
				Cart:          []CheckoutLine{{ID: 1, Qty: 0}},
				PaymentMethod: "card",
			},
			expectError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.StructCtx(context.Background(), tt.reqBody)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolveRequest(t *testing.T) {
	expectedMap := map[string]interface{}{"input": "POS_PRODUCT_7", "commit": true}
	expected, _ := json.Marshal(expectedMap)
	resolveReq := Resolve{Input: "POS_PRODUCT_7", Commit: true}

	actual, _ := json.Marshal(resolveReq)

	assert.JSONEq(t, string(expected), string(actual))
}

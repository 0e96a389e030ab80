package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/repository"
)

func transaction(status string, amount string, cost string) repository.Transaction {
	return repository.Transaction{
		Amount: repository.NumericFromDecimal(decimal.RequireFromString(amount)),
		Cost:   repository.NumericFromDecimal(decimal.RequireFromString(cost)),
		Status: status,
	}
}

func product(id int64, name string, price string, stock int32) repository.Product {
	return repository.Product{
		ID:    id,
		Name:  name,
		Price: repository.NumericFromDecimal(decimal.RequireFromString(price)),
		Stock: stock,
	}
}

func TestAnalyze(t *testing.T) {
	transactions := []repository.Transaction{
		transaction(constants.StatusCash, "100", "70"),
		transaction(constants.StatusCard, "200", "140"),
		transaction(constants.StatusCredit, "300", "210"),
		transaction(constants.StatusPayment, "-50", "0"),
		transaction(constants.StatusVoid, "999", "700"),
	}
	products := []repository.Product{
		product(1, "Red T-Shirt", "100", 20),
		product(2, "Blue Jeans", "50", 5),
	}

	analysis := Analyze(transactions, products)

	assert.True(t, decimal.NewFromInt(550).Equal(analysis.Revenue), "revenue=%s", analysis.Revenue)
	assert.True(t, decimal.NewFromInt(420).Equal(analysis.CostOfGoods))
	assert.True(t, decimal.NewFromInt(130).Equal(analysis.GrossProfit))
	assert.True(t, decimal.NewFromInt(100).Equal(analysis.CashSales))
	assert.True(t, decimal.NewFromInt(200).Equal(analysis.CardSales))
	assert.True(t, decimal.NewFromInt(300).Equal(analysis.CreditSales))
	assert.True(t, decimal.NewFromInt(50).Equal(analysis.PaymentsReceived))
	assert.True(t, decimal.NewFromInt(250).Equal(analysis.TotalCreditDue))
	// 0.70 × (100×20 + 50×5)
	assert.True(t, decimal.RequireFromString("1575").Equal(analysis.InventoryCost))
	assert.Equal(t, 3, analysis.TransactionCount)

	require.Len(t, analysis.DeadStock, 1)
	assert.Equal(t, "Red T-Shirt", analysis.DeadStock[0].Name)
}

func TestAnalyzePaymentsReduceRevenue(t *testing.T) {
	transactions := []repository.Transaction{
		transaction(constants.StatusCash, "100", "70"),
		transaction(constants.StatusPayment, "-50", "0"),
	}

	analysis := Analyze(transactions, nil)

	// Payment rows are stored negative and pull the revenue figure down.
	assert.True(t, decimal.NewFromInt(50).Equal(analysis.Revenue), "revenue=%s", analysis.Revenue)
	assert.True(t, decimal.NewFromInt(70).Equal(analysis.CostOfGoods))
	assert.True(t, decimal.NewFromInt(-20).Equal(analysis.GrossProfit))
	assert.True(t, decimal.NewFromInt(50).Equal(analysis.PaymentsReceived))
	assert.Equal(t, 1, analysis.TransactionCount)
}

func TestAnalyzeEmptyLedger(t *testing.T) {
	analysis := Analyze(nil, nil)

	assert.True(t, analysis.Revenue.IsZero())
	assert.True(t, analysis.GrossProfit.IsZero())
	assert.True(t, analysis.TotalCreditDue.IsZero())
	assert.Equal(t, 0, analysis.TransactionCount)
	assert.Empty(t, analysis.DeadStock)
	assert.Equal(t, "₹ 0.00", analysis.RevenueDisplay)
}

func TestAnalyzeDeadStockLimit(t *testing.T) {
	products := []repository.Product{
		product(1, "a", "10", 11),
		product(2, "b", "10", 12),
		product(3, "c", "10", 13),
		product(4, "d", "10", 14),
		product(5, "e", "10", 15),
		product(6, "f", "10", 16),
		product(7, "sells fine", "10", 10),
	}

	analysis := Analyze(nil, products)

	require.Len(t, analysis.DeadStock, 5)
	// Slowest movers first.
	assert.Equal(t, "f", analysis.DeadStock[0].Name)
	assert.EqualValues(t, 16, analysis.DeadStock[0].Stock)
	assert.Equal(t, "b", analysis.DeadStock[4].Name)
}

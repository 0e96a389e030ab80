package response

import (
	"github.com/shopspring/decimal"
)

type DeadStockItem struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Stock int32           `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

// Analysis is the owner's daybook view: sales split by settlement method,
// profit against the cost-of-goods estimate, debt position, and slow movers.
type Analysis struct {
	Revenue               decimal.Decimal `json:"revenue"`
	RevenueDisplay        string          `json:"revenue_display"`
	CostOfGoods           decimal.Decimal `json:"cost_of_goods"`
	CostOfGoodsDisplay    string          `json:"cost_of_goods_display"`
	GrossProfit           decimal.Decimal `json:"gross_profit"`
	GrossProfitDisplay    string          `json:"gross_profit_display"`
	CashSales             decimal.Decimal `json:"cash_sales"`
	CardSales             decimal.Decimal `json:"card_sales"`
	CreditSales           decimal.Decimal `json:"credit_sales"`
	PaymentsReceived      decimal.Decimal `json:"payments_received"`
	TotalCreditDue        decimal.Decimal `json:"total_credit_due"`
	TotalCreditDueDisplay string          `json:"total_credit_due_display"`
	InventoryCost         decimal.Decimal `json:"inventory_cost"`
	InventoryCostDisplay  string          `json:"inventory_cost_display"`
	TransactionCount      int             `json:"transaction_count"`
	DeadStock             []DeadStockItem `json:"dead_stock"`
}

package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/currency"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/log"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/report/pkg/response"
)

// inventoryCostRatio mirrors the checkout cost-of-goods heuristic: stock on
// the shelf is valued at 70% of its sale price.
var inventoryCostRatio = decimal.New(7, -1)

const (
	deadStockThreshold = 10
	deadStockLimit     = 5
)

type ReportService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
}

func NewReportService(pool *pgxpool.Pool, queries *repository.Queries) ReportService {
	return ReportService{pool: pool, queries: queries}
}

// Analyze folds the transaction ledger and catalog into the analysis figures.
// Void transactions are excluded throughout. Payment rows carry a negative
// amount, so they reduce revenue as well as credit due; only the cash, card
// and credit rows count as transactions.
func Analyze(
	transactions []repository.Transaction,
	products []repository.Product,
) response.Analysis {
	analysis := response.Analysis{
		Revenue:          decimal.Zero,
		CostOfGoods:      decimal.Zero,
		GrossProfit:      decimal.Zero,
		CashSales:        decimal.Zero,
		CardSales:        decimal.Zero,
		CreditSales:      decimal.Zero,
		PaymentsReceived: decimal.Zero,
		TotalCreditDue:   decimal.Zero,
		InventoryCost:    decimal.Zero,
		DeadStock:        []response.DeadStockItem{},
	}

	for _, t := range transactions {
		amount := repository.DecimalFromNumeric(t.Amount)
		cost := repository.DecimalFromNumeric(t.Cost)

		switch t.Status {
		case constants.StatusVoid:
			continue
		case constants.StatusCash:
			analysis.CashSales = analysis.CashSales.Add(amount)
		case constants.StatusCard:
			analysis.CardSales = analysis.CardSales.Add(amount)
		case constants.StatusCredit:
			analysis.CreditSales = analysis.CreditSales.Add(amount)
			analysis.TotalCreditDue = analysis.TotalCreditDue.Add(amount)
		case constants.StatusPayment:
			analysis.PaymentsReceived = analysis.PaymentsReceived.Add(amount.Abs())
			analysis.TotalCreditDue = analysis.TotalCreditDue.Sub(amount.Abs())
		}

		analysis.Revenue = analysis.Revenue.Add(amount)
		analysis.CostOfGoods = analysis.CostOfGoods.Add(cost)
		if t.Status != constants.StatusPayment {
			analysis.TransactionCount++
		}
	}
	analysis.GrossProfit = analysis.Revenue.Sub(analysis.CostOfGoods)

	deadStock := []response.DeadStockItem{}
	for _, p := range products {
		price := repository.DecimalFromNumeric(p.Price)
		stock := decimal.NewFromInt32(p.Stock)
		analysis.InventoryCost = analysis.InventoryCost.
			Add(price.Mul(inventoryCostRatio).Mul(stock))

		if p.Stock > deadStockThreshold {
			deadStock = append(deadStock, response.DeadStockItem{
				ID:    p.ID,
				Name:  p.Name,
				Stock: p.Stock,
				Price: price,
			})
		}
	}
	sort.Slice(deadStock, func(i, j int) bool {
		return deadStock[i].Stock > deadStock[j].Stock
	})
	if len(deadStock) > deadStockLimit {
		deadStock = deadStock[:deadStockLimit]
	}
	analysis.DeadStock = deadStock

	analysis.RevenueDisplay = currency.Format(analysis.Revenue)
	analysis.CostOfGoodsDisplay = currency.Format(analysis.CostOfGoods)
	analysis.GrossProfitDisplay = currency.Format(analysis.GrossProfit)
	analysis.TotalCreditDueDisplay = currency.Format(analysis.TotalCreditDue)
	analysis.InventoryCostDisplay = currency.Format(analysis.InventoryCost)
	return analysis
}

func (svc ReportService) Analysis(c context.Context) (response.Analysis, error) {
	c, span := inOtel.Tracer.Start(c, "ReportService Analysis")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ReportService Analysis").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding transactions").Logger()
	logger.Info().Msg("finding transactions")
	transactions, err := svc.queries.FindTransactions(c)
	if err != nil {
		err = fmt.Errorf("failed finding transactions with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Analysis{}, err
	}
	logger.Info().Msgf("found %d transactions", len(transactions))

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	products, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Analysis{}, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return Analyze(transactions, products), nil
}

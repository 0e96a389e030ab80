package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/pos/cart/internal/state"
	"github.com/kiranalabs/pos/cart/pkg/request"
	"github.com/kiranalabs/pos/cart/pkg/response"
	"github.com/kiranalabs/pos/internal/currency"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/log"
	"github.com/kiranalabs/pos/internal/metrics"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/internal/repository"
)

// costRatio estimates cost of goods at 70% of the sale price, the store's
// standing margin heuristic.
var costRatio = decimal.New(7, -1)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	store   *state.Store
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	store *state.Store,
) CartService {
	return CartService{pool: pool, queries: queries, store: store}
}

func (svc CartService) OpenCart(c context.Context) response.Cart {
	c, span := inOtel.Tracer.Start(c, "CartService OpenCart")
	defer span.End()

	cart := svc.store.Open()
	zerolog.Ctx(c).Info().
		Str(log.KeyTag, "CartService OpenCart").
		Str(log.KeyCartID, cart.ID.String()).
		Msg("opened session cart")
	return cart
}

func (svc CartService) RenderCart(c context.Context, cartID uuid.UUID) (response.Cart, error) {
	_, span := inOtel.Tracer.Start(c, "CartService RenderCart")
	defer span.End()
	return svc.store.Render(cartID)
}

// AddItem reads the catalog entry server-side and appends it to the session
// cart, incrementing the quantity when the product is already present.
func (svc CartService) AddItem(
	c context.Context,
	cartID uuid.UUID,
	param request.AddItem,
) (response.Cart, error) {
	c, span := inOtel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyCartID, cartID.String()).
		Int64(log.KeyProductID, param.ProductID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := svc.queries.FindProductById(c, param.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%d with error=%w", param.ProductID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	cart, err := svc.store.AddItem(
		cartID,
		product.ID,
		product.Name,
		repository.DecimalFromNumeric(product.Price),
	)
	if err != nil {
		err = fmt.Errorf("failed adding item to cartId=%s with error=%w", cartID.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("added item to cart")

	return cart, nil
}

func (svc CartService) SetQuantity(
	c context.Context,
	cartID uuid.UUID,
	productID int64,
	quantity int32,
) (response.Cart, error) {
	c, span := inOtel.Tracer.Start(c, "CartService SetQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService SetQuantity").
		Str(log.KeyCartID, cartID.String()).
		Int64(log.KeyProductID, productID).
		Int32(log.KeyQuantity, quantity).
		Logger()

	cart, err := svc.store.SetQuantity(cartID, productID, quantity)
	if err != nil {
		err = fmt.Errorf(
			"failed setting quantity of productId=%d in cartId=%s with error=%w",
			productID,
			cartID.String(),
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("set quantity")
	return cart, nil
}

func (svc CartService) RemoveItem(
	c context.Context,
	cartID uuid.UUID,
	productID int64,
) (response.Cart, error) {
	c, span := inOtel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyCartID, cartID.String()).
		Int64(log.KeyProductID, productID).
		Logger()

	cart, err := svc.store.RemoveItem(cartID, productID)
	if err != nil {
		err = fmt.Errorf(
			"failed removing productId=%d from cartId=%s with error=%w",
			productID,
			cartID.String(),
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed item")
	return cart, nil
}

// ResolveInput interprets sale-screen input. A committed scan code looks the
// product up and adds it to the cart; anything without the scan prefix is a
// case-insensitive name filter over the catalog. The two behaviors are
// mutually exclusive per call.
func (svc CartService) ResolveInput(
	c context.Context,
	cartID uuid.UUID,
	param request.Resolve,
) (response.Resolve, error) {
	c, span := inOtel.Tracer.Start(c, "CartService ResolveInput")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ResolveInput").
		Str(log.KeyCartID, cartID.String()).
		Str(log.KeyScanInput, param.Input).
		Logger()

	classification := state.Classify(param.Input)
	if classification.Kind == state.KindScanCode {
		if !param.Commit {
			// Scanner input accumulates until the terminating key-confirm;
			// nothing to do yet.
			return response.Resolve{Kind: response.KindScanCode}, nil
		}

		logger = logger.With().Str(log.KeyProcess, "resolving scan code").Logger()
		logger.Info().Msgf("resolving scan code productId=%d", classification.ProductID)
		product, err := svc.queries.FindProductById(c, classification.ProductID)
		if err != nil {
			metrics.ScanResolvedTotal.WithLabelValues("not_found").Inc()
			if errors.Is(err, pgx.ErrNoRows) || classification.ProductID == 0 {
				err = fmt.Errorf(
					"%w for scan code %s",
					inErrors.ErrProductNotFound,
					param.Input,
				)
			}
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Resolve{}, err
		}

		cart, err := svc.store.AddItem(
			cartID,
			product.ID,
			product.Name,
			repository.DecimalFromNumeric(product.Price),
		)
		if err != nil {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Resolve{}, err
		}
		metrics.ScanResolvedTotal.WithLabelValues("added").Inc()
		logger.Info().Msgf("scan code resolved to productId=%d", product.ID)

		var added *response.CartLine
		for i := range cart.Lines {
			if cart.Lines[i].ProductID == product.ID {
				added = &cart.Lines[i]
				break
			}
		}
		return response.Resolve{Kind: response.KindScanCode, Added: added, Cart: &cart}, nil
	}

	logger = logger.With().Str(log.KeyProcess, "filtering catalog").Logger()
	logger.Info().Msgf("filtering catalog by query=%s", classification.Query)
	products, err := svc.queries.FindProductsByName(c, classification.Query)
	if err != nil {
		err = fmt.Errorf("failed filtering catalog with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Resolve{}, err
	}
	logger.Info().Msgf("filtered catalog matches=%d", len(products))

	resolved := response.Resolve{Kind: response.KindFreeText}
	for _, p := range products {
		resolved.Matches = append(resolved.Matches, p.Response())
	}
	return resolved, nil
}

// CheckoutOrder is the normalized finalized sale: lines either snapshotted
// from a session cart or taken from an external checkout submission.
type CheckoutOrder struct {
	Lines         []state.Line
	CustomerID    *int64
	PaymentMethod string
}

// Checkout settles a sale in one transaction: each line's stock is
// conditionally decremented, totals are computed from catalog prices, and a
// transaction record plus its line items are written. Any shortfall rolls
// everything back and the sale is rejected whole.
func (svc CartService) Checkout(
	c context.Context,
	param CheckoutOrder,
) (response.CheckoutResult, error) {
	c, span := inOtel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyPaymentMethod, param.PaymentMethod).
		Int(log.KeyCartLines, len(param.Lines)).
		Logger()

	if len(param.Lines) == 0 {
		err := inErrors.ErrEmptyCart
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CheckoutResult{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.CheckoutTotal.WithLabelValues("error").Inc()
		return response.CheckoutResult{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func(lg zerolog.Logger) {
		l := lg.With().Str(log.KeyProcess, "rolling back transaction").Logger()
		err := tx.Rollback(c)
		if err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inErrors.HandleError(err, span)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Info().Msg("rolled back transaction")
	}(logger)

	queries := svc.queries.WithTx(tx)

	totalAmount := decimal.Zero
	totalCost := decimal.Zero
	type settledLine struct {
		product  repository.Product
		quantity int32
	}
	settled := make([]settledLine, 0, len(param.Lines))

	logger = logger.With().Str(log.KeyProcess, "taking stock").Logger()
	for _, line := range param.Lines {
		logger.Info().Msgf("taking stock for productId=%d qty=%d", line.ProductID, line.Quantity)
		product, err := queries.FindProductById(c, line.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = fmt.Errorf(
					"productId=%d with error=%w",
					line.ProductID,
					inErrors.ErrProductNotFound,
				)
			}
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			metrics.CheckoutTotal.WithLabelValues("rejected").Inc()
			return response.CheckoutResult{}, err
		}

		affected, err := queries.DecrementProductStock(c, repository.DecrementProductStockParams{
			ID:       product.ID,
			Quantity: line.Quantity,
		})
		if err != nil {
			err = fmt.Errorf("failed taking stock with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			metrics.CheckoutTotal.WithLabelValues("error").Inc()
			return response.CheckoutResult{}, err
		}
		if affected == 0 {
			err = fmt.Errorf("%w for %s", inErrors.ErrInsufficientStock, product.Name)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			metrics.CheckoutTotal.WithLabelValues("rejected").Inc()
			return response.CheckoutResult{}, err
		}

		// Totals come from catalog prices, not the submitted payload.
		price := repository.DecimalFromNumeric(product.Price)
		quantity := decimal.NewFromInt32(line.Quantity)
		totalAmount = totalAmount.Add(price.Mul(quantity))
		totalCost = totalCost.Add(price.Mul(costRatio).Mul(quantity))
		settled = append(settled, settledLine{product: product, quantity: line.Quantity})
	}
	logger.Info().Msgf("took stock for %d lines", len(settled))

	logger = logger.With().Str(log.KeyProcess, "recording transaction").Logger()
	logger.Info().Msg("recording transaction")
	customerID := pgtype.Int8{}
	if param.CustomerID != nil {
		customerID = pgtype.Int8{Int64: *param.CustomerID, Valid: true}
	}
	transaction, err := queries.InsertTransaction(c, repository.InsertTransactionParams{
		Amount:     repository.NumericFromDecimal(totalAmount),
		Cost:       repository.NumericFromDecimal(totalCost),
		Status:     param.PaymentMethod,
		CustomerID: customerID,
	})
	if err != nil {
		err = fmt.Errorf("failed recording transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.CheckoutTotal.WithLabelValues("error").Inc()
		return response.CheckoutResult{}, err
	}
	logger = logger.With().Int64(log.KeyTransactionID, transaction.ID).Logger()
	logger.Info().Msg("recorded transaction")

	logger = logger.With().Str(log.KeyProcess, "recording transaction items").Logger()
	for _, line := range settled {
		_, err := queries.InsertTransactionItem(c, repository.InsertTransactionItemParams{
			TransactionID: transaction.ID,
			ProductID:     pgtype.Int8{Int64: line.product.ID, Valid: true},
			Name:          line.product.Name,
			Price:         line.product.Price,
			Quantity:      line.quantity,
		})
		if err != nil {
			err = fmt.Errorf("failed recording transaction item with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			metrics.CheckoutTotal.WithLabelValues("error").Inc()
			return response.CheckoutResult{}, err
		}
	}
	logger.Info().Msg("recorded transaction items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.CheckoutTotal.WithLabelValues("error").Inc()
		return response.CheckoutResult{}, err
	}
	logger.Info().Msg("committed transaction")

	metrics.CheckoutTotal.WithLabelValues("success").Inc()
	return response.CheckoutResult{TransactionID: transaction.ID}, nil
}

// CheckoutSession finalizes a server-held session cart. The cart is marked
// settling for the duration so rapid repeated submissions cannot double-sell;
// failure leaves its lines intact for correction, success drops the cart.
func (svc CartService) CheckoutSession(
	c context.Context,
	cartID uuid.UUID,
	param request.SessionCheckout,
) (response.CheckoutResult, error) {
	c, span := inOtel.Tracer.Start(c, "CartService CheckoutSession")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService CheckoutSession").
		Str(log.KeyCartID, cartID.String()).
		Logger()

	lines, err := svc.store.BeginCheckout(cartID)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CheckoutResult{}, err
	}

	c = logger.WithContext(c)
	result, err := svc.Checkout(c, CheckoutOrder{
		Lines:         lines,
		CustomerID:    param.CustomerID,
		PaymentMethod: param.PaymentMethod,
	})
	if err != nil {
		svc.store.AbortCheckout(cartID)
		return response.CheckoutResult{}, err
	}

	svc.store.CompleteCheckout(cartID)
	return result, nil
}

// Receipt reassembles a settled sale from its persisted line items.
func (svc CartService) Receipt(
	c context.Context,
	transactionID int64,
) (response.Receipt, error) {
	c, span := inOtel.Tracer.Start(c, "CartService Receipt")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Receipt").
		Int64(log.KeyTransactionID, transactionID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding transaction").Logger()
	logger.Info().Msg("finding transaction")
	transaction, err := svc.queries.FindTransactionById(c, transactionID)
	if err != nil {
		err = fmt.Errorf(
			"failed finding transactionId=%d with error=%w",
			transactionID,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	logger.Info().Msg("found transaction")

	logger = logger.With().Str(log.KeyProcess, "finding transaction items").Logger()
	logger.Info().Msg("finding transaction items")
	items, err := svc.queries.FindTransactionItems(c, transactionID)
	if err != nil {
		err = fmt.Errorf(
			"failed finding items of transactionId=%d with error=%w",
			transactionID,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	logger.Info().Msgf("found %d transaction items", len(items))

	receipt := response.Receipt{
		TransactionID: transaction.ID,
		Timestamp:     transaction.Timestamp.Time,
		PaymentMethod: transaction.Status,
		Total:         repository.DecimalFromNumeric(transaction.Amount),
	}
	receipt.TotalDisplay = currency.Format(receipt.Total)
	for _, item := range items {
		price := repository.DecimalFromNumeric(item.Price)
		subtotal := price.Mul(decimal.NewFromInt32(item.Quantity))
		receipt.Items = append(receipt.Items, response.ReceiptItem{
			Name:            item.Name,
			Quantity:        item.Quantity,
			Price:           price,
			Subtotal:        subtotal,
			SubtotalDisplay: currency.Format(subtotal),
		})
	}

	if transaction.CustomerID.Valid {
		logger = logger.With().Str(log.KeyProcess, "finding customer").Logger()
		logger.Info().Msg("finding customer")
		customer, err := svc.queries.FindCustomerById(c, transaction.CustomerID.Int64)
		if err != nil {
			err = fmt.Errorf(
				"failed finding customerId=%d with error=%w",
				transaction.CustomerID.Int64,
				err,
			)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Receipt{}, err
		}
		receipt.Customer = &response.ReceiptCustomer{
			ID:    customer.ID,
			Name:  customer.Name,
			Phone: customer.Phone,
		}
		logger.Info().Msg("found customer")
	}

	return receipt, nil
}

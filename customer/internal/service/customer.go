package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/pos/customer/pkg/request"
	"github.com/kiranalabs/pos/customer/pkg/response"
	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/currency"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/log"
	"github.com/kiranalabs/pos/internal/metrics"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/internal/repository"
)

const pgUniqueViolation = "23505"

type csvCustomer struct {
	ID      int64  `csv:"id"`
	Name    string `csv:"name"`
	Phone   string `csv:"phone"`
	Email   string `csv:"email"`
	Address string `csv:"address"`
}

type CustomerService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
}

func NewCustomerService(pool *pgxpool.Pool, queries *repository.Queries) CustomerService {
	return CustomerService{pool: pool, queries: queries}
}

func textFrom(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func (svc CustomerService) InsertCustomer(
	c context.Context,
	param request.Customer,
) (response.Customer, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService InsertCustomer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService InsertCustomer").
		Str(log.KeyProcess, "inserting customer").
		Logger()

	logger.Info().Msg("inserting customer")
	customer, err := svc.queries.InsertCustomer(c, repository.InsertCustomerParams{
		Name:    param.Name,
		Phone:   param.Phone,
		Email:   textFrom(param.Email),
		Address: textFrom(param.Address),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			err = inErrors.ErrPhoneRegistered
		}
		err = fmt.Errorf("failed inserting customer with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Customer{}, err
	}
	logger.Info().Msgf("inserted customerId=%d", customer.ID)

	return customer.Response(), nil
}

// QuickAdd is the sale-screen shortcut: name and phone only, so a walk-in
// buyer can be put on credit without leaving the register.
func (svc CustomerService) QuickAdd(
	c context.Context,
	param request.QuickAdd,
) (response.Customer, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService QuickAdd")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService QuickAdd").
		Str(log.KeyProcess, "inserting customer").
		Logger()

	logger.Info().Msg("inserting customer")
	customer, err := svc.queries.InsertCustomer(c, repository.InsertCustomerParams{
		Name:  param.Name,
		Phone: param.Phone,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			err = inErrors.ErrPhoneRegistered
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Customer{}, err
		}
		err = fmt.Errorf("failed inserting customer with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Customer{}, err
	}
	logger.Info().Msgf("inserted customerId=%d", customer.ID)

	return customer.Response(), nil
}

func (svc CustomerService) FindCustomers(c context.Context) ([]response.Customer, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService FindCustomers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService FindCustomers").
		Str(log.KeyProcess, "finding customers").
		Logger()

	logger.Info().Msg("finding customers")
	customers, err := svc.queries.FindCustomers(c)
	if err != nil {
		err = fmt.Errorf("failed finding customers with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d customers", len(customers))

	responses := make([]response.Customer, 0, len(customers))
	for _, cu := range customers {
		responses = append(responses, cu.Response())
	}
	return responses, nil
}

// CreditDue computes outstanding debt from the ledger: credit sales add to
// the balance, payment rows (stored negative) reduce it.
func CreditDue(history []repository.Transaction) decimal.Decimal {
	due := decimal.Zero
	for _, t := range history {
		amount := repository.DecimalFromNumeric(t.Amount)
		switch t.Status {
		case constants.StatusCredit:
			due = due.Add(amount)
		case constants.StatusPayment:
			due = due.Sub(amount.Abs())
		}
	}
	return due
}

// FindCustomerById returns the customer with their purchase history and
// outstanding credit.
func (svc CustomerService) FindCustomerById(
	c context.Context,
	id int64,
) (response.Detail, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService FindCustomerById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService FindCustomerById").
		Int64(log.KeyCustomerID, id).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding customer").Logger()
	logger.Info().Msg("finding customer")
	customer, err := svc.queries.FindCustomerById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrCustomerNotFound
		}
		err = fmt.Errorf("failed finding customerId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}
	logger.Info().Msg("found customer")

	logger = logger.With().Str(log.KeyProcess, "finding purchase history").Logger()
	logger.Info().Msg("finding purchase history")
	history, err := svc.queries.FindTransactionsByCustomerId(c, id)
	if err != nil {
		err = fmt.Errorf(
			"failed finding transactions of customerId=%d with error=%w",
			id,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}
	logger.Info().Msgf("found %d transactions", len(history))

	detail := response.Detail{Customer: customer.Response()}
	for _, t := range history {
		amount := repository.DecimalFromNumeric(t.Amount)
		detail.History = append(detail.History, response.TransactionSummary{
			ID:            t.ID,
			Timestamp:     t.Timestamp.Time,
			Amount:        amount,
			AmountDisplay: currency.Format(amount),
			Status:        t.Status,
		})
	}
	detail.CreditDue = CreditDue(history)
	detail.CreditDueDisplay = currency.Format(detail.CreditDue)
	return detail, nil
}

func (svc CustomerService) UpdateCustomer(
	c context.Context,
	id int64,
	param request.Customer,
) (response.Customer, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService UpdateCustomer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService UpdateCustomer").
		Int64(log.KeyCustomerID, id).
		Str(log.KeyProcess, "updating customer").
		Logger()

	logger.Info().Msg("updating customer")
	customer, err := svc.queries.UpdateCustomer(c, repository.UpdateCustomerParams{
		ID:      id,
		Name:    param.Name,
		Phone:   param.Phone,
		Email:   textFrom(param.Email),
		Address: textFrom(param.Address),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrCustomerNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			err = inErrors.ErrPhoneRegistered
		}
		err = fmt.Errorf("failed updating customerId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Customer{}, err
	}
	logger.Info().Msg("updated customer")

	return customer.Response(), nil
}

// RemoveCustomer deletes the customer; their transactions go with them via
// the FK cascade.
func (svc CustomerService) RemoveCustomer(
	c context.Context,
	id int64,
) (response.Customer, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService RemoveCustomer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService RemoveCustomer").
		Int64(log.KeyCustomerID, id).
		Str(log.KeyProcess, "removing customer").
		Logger()

	logger.Info().Msg("removing customer")
	customer, err := svc.queries.DeleteCustomer(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrCustomerNotFound
		}
		err = fmt.Errorf("failed removing customerId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Customer{}, err
	}
	logger.Info().Msg("removed customer")

	return customer.Response(), nil
}

// RecordPayment applies a debt repayment. The amount must be positive, the
// customer must owe something, and the payment cannot exceed the balance.
// The repayment is stored as a negative-amount ledger row.
func (svc CustomerService) RecordPayment(
	c context.Context,
	id int64,
	param request.RecordPayment,
) (response.Detail, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService RecordPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService RecordPayment").
		Int64(log.KeyCustomerID, id).
		Logger()

	if !param.Amount.IsPositive() {
		err := fmt.Errorf("payment amount must be positive, got %s", param.Amount.String())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding customer").Logger()
	logger.Info().Msg("finding customer")
	_, err := svc.queries.FindCustomerById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrCustomerNotFound
		}
		err = fmt.Errorf("failed finding customerId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}
	logger.Info().Msg("found customer")

	logger = logger.With().Str(log.KeyProcess, "computing outstanding balance").Logger()
	logger.Info().Msg("computing outstanding balance")
	history, err := svc.queries.FindTransactionsByCustomerId(c, id)
	if err != nil {
		err = fmt.Errorf(
			"failed finding transactions of customerId=%d with error=%w",
			id,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}
	outstanding := CreditDue(history)
	logger.Info().Msgf("outstanding balance=%s", outstanding.String())

	if !outstanding.IsPositive() {
		err := inErrors.ErrNoOutstandingDebt
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}
	if param.Amount.GreaterThan(outstanding) {
		err := fmt.Errorf(
			"payment amount %s exceeds outstanding balance %s",
			param.Amount.String(),
			outstanding.String(),
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "recording payment").Logger()
	logger.Info().Msg("recording payment")
	_, err = svc.queries.InsertTransaction(c, repository.InsertTransactionParams{
		Amount:     repository.NumericFromDecimal(param.Amount.Neg()),
		Cost:       repository.NumericFromDecimal(decimal.Zero),
		Status:     constants.StatusPayment,
		CustomerID: pgtype.Int8{Int64: id, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed recording payment with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Detail{}, err
	}
	metrics.PaymentRecordedTotal.Inc()
	logger.Info().Msg("recorded payment")

	c = logger.WithContext(c)
	return svc.FindCustomerById(c, id)
}

// ExportCsv writes the customer book as CSV.
func (svc CustomerService) ExportCsv(c context.Context) ([]byte, error) {
	c, span := inOtel.Tracer.Start(c, "CustomerService ExportCsv")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerService ExportCsv").
		Str(log.KeyProcess, "finding customers").
		Logger()

	logger.Info().Msg("finding customers")
	customers, err := svc.queries.FindCustomers(c)
	if err != nil {
		err = fmt.Errorf("failed finding customers with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d customers", len(customers))

	rows := make([]csvCustomer, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, csvCustomer{
			ID:      cu.ID,
			Name:    cu.Name,
			Phone:   cu.Phone,
			Email:   cu.Email.String,
			Address: cu.Address.String,
		})
	}

	logger = logger.With().Str(log.KeyProcess, "marshaling csv").Logger()
	logger.Info().Msg("marshaling csv")
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		err = fmt.Errorf("failed marshaling csv with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("marshaled csv")

	return out, nil
}

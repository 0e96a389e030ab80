package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/config"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/infra"
	"github.com/kiranalabs/pos/internal/log"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/internal/repository"
)

// RunSeed creates the admin login and a small starter catalog on an empty
// database. Already-populated tables are left alone, so re-running is safe.
func RunSeed(c context.Context) {
	c, span := inOtel.Tracer.Start(c, "RunSeed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppPosService).
		Str(log.KeyTag, "main RunSeed").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppPosService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer db.Close()
	logger.Info().Msg("initialized database")

	queries := repository.New(db)

	logger = logger.With().Str(log.KeyProcess, "seeding admin user").Logger()
	count, err := queries.CountUsers(c)
	if err != nil {
		err = fmt.Errorf("failed counting users with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
		if err != nil {
			err = fmt.Errorf("failed hashing admin password with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		user, err := queries.InsertUser(c, repository.InsertUserParams{
			Username: "admin",
			Password: string(hashed),
		})
		if err != nil {
			err = fmt.Errorf("failed inserting admin user with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msgf("created admin user username=%s", user.Username)
	} else {
		logger.Info().Msg("users already seeded, skipping")
	}

	logger = logger.With().Str(log.KeyProcess, "seeding sample data").Logger()
	_, err = queries.FindProductById(c, 1)
	if err == nil {
		logger.Info().Msg("catalog already seeded, skipping")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed checking catalog with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}

	customers := []repository.InsertCustomerParams{
		{
			Name:    "Karan",
			Phone:   "9876543210",
			Email:   pgtype.Text{String: "karan@example.com", Valid: true},
			Address: pgtype.Text{String: "123 Market Road", Valid: true},
		},
		{
			Name:    "Priya Sharma",
			Phone:   "9988776655",
			Email:   pgtype.Text{String: "priya@example.com", Valid: true},
			Address: pgtype.Text{String: "456 Station Road", Valid: true},
		},
	}
	for _, param := range customers {
		customer, err := queries.InsertCustomer(c, param)
		if err != nil {
			err = fmt.Errorf("failed inserting customer name=%s with error=%w", param.Name, err)
			inErrors.HandleError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msgf("created customerId=%d name=%s", customer.ID, customer.Name)
	}

	products := []repository.InsertProductParams{
		{Name: "Red T-Shirt", Price: repository.NumericFromDecimal(decimal.NewFromInt(250)), Stock: 50},
		{Name: "Blue Jeans", Price: repository.NumericFromDecimal(decimal.NewFromInt(1200)), Stock: 30},
		{Name: "Leather Wallet", Price: repository.NumericFromDecimal(decimal.NewFromInt(450)), Stock: 10},
	}
	for _, param := range products {
		product, err := queries.InsertProduct(c, param)
		if err != nil {
			err = fmt.Errorf("failed inserting product name=%s with error=%w", param.Name, err)
			inErrors.HandleError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		product, err = queries.UpdateProductScanCode(
			c,
			product.ID,
			fmt.Sprintf("%s%d", constants.ScanCodePrefix, product.ID),
		)
		if err != nil {
			err = fmt.Errorf("failed assigning scan code with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().
			Msgf("created productId=%d name=%s scanCode=%s", product.ID, product.Name, product.ScanCode.String)
	}

	logger.Info().Msg("seeded sample data")
}

package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/product/pkg/request"
)

func setup(
	t *testing.T,
	c context.Context,
) (*pgxpool.Pool, *redis.Client, *repository.Queries, *ProductService, func()) {
	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_PORT":     "5432",
			"POSTGRES_USER":     "postgres",
		}),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "db", "migrations", "000001_init.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgxpool config with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(c, "redis/redis-stack-server:7.4.0-v3")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.New(pool)
	productService := NewProductService(pool, queries, redisClient)

	cleanup := func() {
		redisClient.Close()
		pool.Close()
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
	return pool, redisClient, queries, &productService, cleanup
}

func TestProductLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	_, _, queries, productService, cleanup := setup(t, c)
	defer cleanup()

	t.Run("insert stamps scan code", func(t *testing.T) {
		product, err := productService.InsertProduct(c, request.Product{
			Name:  "Red T-Shirt",
			Price: decimal.RequireFromString("250.00"),
			Stock: 50,
		})
		require.NoError(t, err)
		assert.Equal(
			t,
			fmt.Sprintf("%s%d", constants.ScanCodePrefix, product.ID),
			product.ScanCode,
		)

		found, err := productService.FindProductById(c, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.Name, found.Name)
		assert.True(t, product.Price.Equal(found.Price))
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := productService.InsertProduct(c, request.Product{
			Name:  "Red T-Shirt",
			Price: decimal.RequireFromString("300.00"),
			Stock: 1,
		})
		assert.Error(t, err)
	})

	t.Run("csv import restocks by name", func(t *testing.T) {
		csvBody := "id,name,price,stock,scan_code\n" +
			",Red T-Shirt,275.00,10,\n" +
			",Leather Wallet,450.00,10,\n"

		summary, err := productService.ImportCsv(c, strings.NewReader(csvBody))
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 1, summary.Updated)

		restocked, err := queries.FindProductByName(c, "Red T-Shirt")
		require.NoError(t, err)
		assert.EqualValues(t, 60, restocked.Stock)
		assert.True(
			t,
			decimal.RequireFromString("275.00").
				Equal(repository.DecimalFromNumeric(restocked.Price)),
		)

		created, err := queries.FindProductByName(c, "Leather Wallet")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ScanCode.String)
	})
}

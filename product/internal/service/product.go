package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/kiranalabs/pos/internal/common/constants"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/log"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/product/internal/cache"
	"github.com/kiranalabs/pos/product/pkg/request"
	"github.com/kiranalabs/pos/product/pkg/response"
)

// csvProduct is the catalog interchange row. Export writes every column;
// import only requires name, price, and stock.
type csvProduct struct {
	ID       int64           `csv:"id"`
	Name     string          `csv:"name"`
	Price    decimal.Decimal `csv:"price"`
	Stock    int32           `csv:"stock"`
	ScanCode string          `csv:"scan_code"`
}

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

// InsertProduct creates a catalog entry and stamps it with its scan code,
// derived from the assigned id so printed labels stay stable.
func (svc ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding existing product").Logger()
	logger.Info().Msg("finding existing product")
	existing, err := svc.queries.FindProductByName(c, param.Name)
	if err == nil {
		err = fmt.Errorf("product name=%s already exists", existing.Name)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding existing product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("product name is free")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		Name:  param.Name,
		Price: repository.NumericFromDecimal(param.Price),
		Stock: param.Stock,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Int64(log.KeyProductID, product.ID).Logger()
	logger.Info().Msg("inserted product")

	logger = logger.With().Str(log.KeyProcess, "assigning scan code").Logger()
	logger.Info().Msg("assigning scan code")
	product, err = svc.queries.UpdateProductScanCode(
		c,
		product.ID,
		fmt.Sprintf("%s%d", constants.ScanCodePrefix, product.ID),
	)
	if err != nil {
		err = fmt.Errorf("failed assigning scan code with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("assigned scanCode=%s", product.ScanCode.String)

	cacheKey := fmt.Sprintf("%s%d", cache.KeyProducts, product.ID)
	logger = logger.With().
		Str(log.KeyProcess, "inserting product to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("inserting product to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return product.Response(), nil
	}
	logger.Info().Msg("inserted product to cache")

	return product.Response(), nil
}

// FindProducts lists the catalog, optionally filtered by a case-insensitive
// name fragment.
func (svc ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	var products []repository.Product
	var err error
	if param.Query != "" {
		products, err = svc.queries.FindProductsByName(c, param.Query)
	} else {
		products, err = svc.queries.FindProducts(c)
	}
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	responses := make([]response.Product, 0, len(products))
	for _, p := range products {
		responses = append(responses, p.Response())
	}
	return responses, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	id int64,
) (response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf("%s%d", cache.KeyProducts, id)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Int64(log.KeyProductID, id).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey).Result()
	if err == nil && jsonCache != "" {
		var product response.Product
		if err := json.Unmarshal([]byte(jsonCache), &product); err == nil {
			logger.Debug().Msg("found product in cache")
			return product, nil
		}
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Info().Err(err).Msg("cache lookup failed, falling back to database")
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Info().Msg("finding product in database")
	product, err := svc.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in database")

	return product.Response(), nil
}

func (svc ProductService) UpdateProduct(
	c context.Context,
	id int64,
	param request.Product,
) (response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	cacheKey := fmt.Sprintf("%s%d", cache.KeyProducts, id)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Int64(log.KeyProductID, id).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	product, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:    id,
		Name:  param.Name,
		Price: repository.NumericFromDecimal(param.Price),
		Stock: param.Stock,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed updating productId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated product")

	logger = logger.With().Str(log.KeyProcess, "updating product in cache").Logger()
	logger.Info().Msg("updating product in cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed updating product in cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return product.Response(), nil
	}
	logger.Info().Msg("updated product in cache")

	return product.Response(), nil
}

func (svc ProductService) RemoveProduct(
	c context.Context,
	id int64,
) (response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService RemoveProduct")
	defer span.End()

	cacheKey := fmt.Sprintf("%s%d", cache.KeyProducts, id)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService RemoveProduct").
		Int64(log.KeyProductID, id).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing product from cache").Logger()
	logger.Info().Msg("removing product from cache")
	err := svc.cache.JSONDel(c, cacheKey, "$").Err()
	if err != nil {
		err = fmt.Errorf("failed removing product from cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("removed product from cache")

	logger = logger.With().Str(log.KeyProcess, "removing product from database").Logger()
	logger.Info().Msg("removing product from database")
	product, err := svc.queries.DeleteProduct(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed removing productId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("removed product from database")

	return product.Response(), nil
}

// QRCode renders the product's scan code as a PNG suitable for shelf labels.
func (svc ProductService) QRCode(c context.Context, id int64) ([]byte, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService QRCode")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService QRCode").
		Int64(log.KeyProductID, id).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := svc.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%d with error=%w", id, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("found product")

	scanCode := product.ScanCode.String
	if scanCode == "" {
		scanCode = fmt.Sprintf("%s%d", constants.ScanCodePrefix, product.ID)
	}

	logger = logger.With().Str(log.KeyProcess, "encoding qr code").Logger()
	logger.Info().Msgf("encoding qr code for scanCode=%s", scanCode)
	png, err := qrcode.Encode(scanCode, qrcode.Medium, 256)
	if err != nil {
		err = fmt.Errorf("failed encoding qr code with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("encoded qr code")

	return png, nil
}

// ExportCsv writes the whole catalog as CSV.
func (svc ProductService) ExportCsv(c context.Context) ([]byte, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService ExportCsv")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ExportCsv").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	rows := make([]csvProduct, 0, len(products))
	for _, p := range products {
		rows = append(rows, csvProduct{
			ID:       p.ID,
			Name:     p.Name,
			Price:    repository.DecimalFromNumeric(p.Price),
			Stock:    p.Stock,
			ScanCode: p.ScanCode.String,
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

// ImportCsv merges a catalog CSV in one transaction. Rows whose name matches
// an existing product update its price and add to its stock; unmatched rows
// become new products with fresh scan codes.
func (svc ProductService) ImportCsv(c context.Context, r io.Reader) (response.Import, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService ImportCsv")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ImportCsv").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "unmarshaling csv").Logger()
	logger.Info().Msg("unmarshaling csv")
	rows := []csvProduct{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		err = fmt.Errorf("failed unmarshaling csv with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Import{}, err
	}
	logger.Info().Msgf("unmarshaled %d csv rows", len(rows))

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Import{}, err
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
	result := response.Import{}

	logger = logger.With().Str(log.KeyProcess, "merging rows").Logger()
	for _, row := range rows {
		if row.Name == "" {
			continue
		}

		existing, err := queries.FindProductByName(c, row.Name)
		if err == nil {
			_, err = queries.UpdateProduct(c, repository.UpdateProductParams{
				ID:    existing.ID,
				Name:  existing.Name,
				Price: repository.NumericFromDecimal(row.Price),
				Stock: existing.Stock + row.Stock,
			})
			if err != nil {
				err = fmt.Errorf("failed restocking product name=%s with error=%w", row.Name, err)
				inErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Import{}, err
			}
			result.Updated++
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding product name=%s with error=%w", row.Name, err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Import{}, err
		}

		product, err := queries.InsertProduct(c, repository.InsertProductParams{
			Name:  row.Name,
			Price: repository.NumericFromDecimal(row.Price),
			Stock: row.Stock,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting product name=%s with error=%w", row.Name, err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Import{}, err
		}
		_, err = queries.UpdateProductScanCode(
			c,
			product.ID,
			fmt.Sprintf("%s%d", constants.ScanCodePrefix, product.ID),
		)
		if err != nil {
			err = fmt.Errorf("failed assigning scan code with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Import{}, err
		}
		result.Created++
	}
	logger.Info().Msgf("merged rows created=%d updated=%d", result.Created, result.Updated)

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Import{}, err
	}
	logger.Info().Msg("committed transaction")

	return result, nil
}

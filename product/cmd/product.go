package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/product/internal/controller"
	"github.com/kiranalabs/pos/product/internal/service"
)

// AttachProduct wires the catalog endpoints onto the router.
func AttachProduct(router *mux.Router, pool *pgxpool.Pool, queries *repository.Queries, cache *redis.Client) {
	productService := service.NewProductService(pool, queries, cache)
	controller.AttachProductController(router, &productService)
}

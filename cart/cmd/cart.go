package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiranalabs/pos/cart/internal/controller"
	"github.com/kiranalabs/pos/cart/internal/service"
	"github.com/kiranalabs/pos/cart/internal/state"
	"github.com/kiranalabs/pos/internal/repository"
)

// AttachCart wires the session-cart and checkout endpoints onto the router.
// The session store is created here so the process holds exactly one.
func AttachCart(router *mux.Router, pool *pgxpool.Pool, queries *repository.Queries) {
	cartService := service.NewCartService(pool, queries, state.NewStore())
	controller.AttachCartController(router, &cartService)
}

package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiranalabs/pos/internal/config"
	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/user/internal/controller"
	"github.com/kiranalabs/pos/user/internal/service"
)

// AttachUser wires the auth endpoints onto the router.
func AttachUser(router *mux.Router, pool *pgxpool.Pool, queries *repository.Queries, cfg config.Application) {
	userService := service.NewUserService(pool, queries, cfg)
	controller.AttachUserController(router, &userService)
}

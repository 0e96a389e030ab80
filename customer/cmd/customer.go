package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiranalabs/pos/customer/internal/controller"
	"github.com/kiranalabs/pos/customer/internal/service"
	"github.com/kiranalabs/pos/internal/repository"
)

// AttachCustomer wires the customer and debt-ledger endpoints onto the router.
func AttachCustomer(router *mux.Router, pool *pgxpool.Pool, queries *repository.Queries) {
	customerService := service.NewCustomerService(pool, queries)
	controller.AttachCustomerController(router, &customerService)
}

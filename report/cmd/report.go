package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/report/internal/controller"
	"github.com/kiranalabs/pos/report/internal/service"
)

// AttachReport wires the business analysis endpoint onto the router.
func AttachReport(router *mux.Router, pool *pgxpool.Pool, queries *repository.Queries) {
	reportService := service.NewReportService(pool, queries)
	controller.AttachReportController(router, &reportService)
}

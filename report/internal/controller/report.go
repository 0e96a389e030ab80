package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/kiranalabs/pos/internal/errors"
	inHttp "github.com/kiranalabs/pos/internal/http"
	"github.com/kiranalabs/pos/internal/log"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/report/internal/service"
)

type ReportController struct {
	service *service.ReportService
}

func AttachReportController(router *mux.Router, service *service.ReportService) {
	controller := ReportController{service: service}
	router.HandleFunc("/analysis", controller.Analysis).Methods(http.MethodGet)
}

func (t ReportController) Analysis(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "ReportController Analysis")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ReportController Analysis").
		Str(log.KeyProcess, "computing analysis").
		Logger()

	logger.Info().Msg("computing analysis")
	c = logger.WithContext(c)
	analysis, err := t.service.Analysis(c)
	if err != nil {
		err = fmt.Errorf("failed computing analysis with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("computed analysis")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully computed analysis",
		"data": map[string]interface{}{
			"analysis": analysis,
		},
	})
}

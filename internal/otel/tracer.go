package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/kiranalabs/pos/internal/common/constants"
)

var Tracer = otel.Tracer(constants.AppPosService)

package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kiranalabs/pos/customer/internal/service"
	"github.com/kiranalabs/pos/customer/pkg/request"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	inHttp "github.com/kiranalabs/pos/internal/http"
	"github.com/kiranalabs/pos/internal/log"
	inOtel "github.com/kiranalabs/pos/internal/otel"
)

type CustomerController struct {
	service *service.CustomerService
}

func AttachCustomerController(router *mux.Router, service *service.CustomerService) {
	controller := CustomerController{service: service}

	customers := router.PathPrefix("/customers").Subrouter()
	customers.HandleFunc("", controller.InsertCustomer).Methods(http.MethodPost)
	customers.HandleFunc("", controller.FindCustomers).Methods(http.MethodGet)
	customers.HandleFunc("/export", controller.ExportCsv).Methods(http.MethodGet)
	customers.HandleFunc("/{customerId}", controller.FindCustomerById).Methods(http.MethodGet)
	customers.HandleFunc("/{customerId}", controller.UpdateCustomer).Methods(http.MethodPut)
	customers.HandleFunc("/{customerId}", controller.RemoveCustomer).Methods(http.MethodDelete)
	customers.HandleFunc("/{customerId}/payments", controller.RecordPayment).
		Methods(http.MethodPost)

	router.HandleFunc("/add_customer_quick", controller.QuickAdd).Methods(http.MethodPost)
}

// QuickAdd serves the register's inline customer form; the response shape is
// the fixed success/message contract the front-end expects.
func (t CustomerController) QuickAdd(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController QuickAdd")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController QuickAdd").
		Str(log.KeyProcess, "decoding requestbody").
		Logger()

	logger.Info().Msg("decoding requestbody")
	reqBody := request.QuickAdd{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Name and phone are required.",
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "adding customer").Logger()
	logger.Info().Msg("adding customer")
	c = logger.WithContext(c)
	customer, err := t.service.QuickAdd(c, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		message := err.Error()
		if errors.Is(err, inErrors.ErrPhoneRegistered) {
			message = "Phone number already registered."
		}
		inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": message,
		})
		return
	}
	logger.Info().Msgf("added customerId=%d", customer.ID)

	inHttp.WriteJson(c, w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"name":        customer.Name,
		"phone":       customer.Phone,
		"customer_id": customer.ID,
	})
}

func (t CustomerController) InsertCustomer(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController InsertCustomer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController InsertCustomer").
		Str(log.KeyProcess, "decoding requestbody").
		Logger()

	logger.Info().Msg("decoding requestbody")
	reqBody := request.Customer{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "inserting customer").Logger()
	logger.Info().Msg("inserting customer")
	c = logger.WithContext(c)
	customer, err := t.service.InsertCustomer(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting customer with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("inserted customer")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully inserted customer",
		"data": map[string]interface{}{
			"customer": customer,
		},
	})
}

func (t CustomerController) FindCustomers(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController FindCustomers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController FindCustomers").
		Str(log.KeyProcess, "finding customers").
		Logger()

	logger.Info().Msg("finding customers")
	c = logger.WithContext(c)
	customers, err := t.service.FindCustomers(c)
	if err != nil {
		err = fmt.Errorf("failed finding customers with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d customers", len(customers))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found customers",
		"data": map[string]interface{}{
			"customers": customers,
		},
	})
}

func (t CustomerController) FindCustomerById(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController FindCustomerById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController FindCustomerById").
		Str(log.KeyProcess, "validating customerId").
		Logger()

	logger.Info().Msg("validating customerId")
	customerId, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		err = fmt.Errorf("failed validating customerId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyCustomerID, customerId).Logger()
	logger.Info().Msgf("validated customerId=%d", customerId)

	logger = logger.With().Str(log.KeyProcess, "finding customer").Logger()
	logger.Info().Msg("finding customer")
	c = logger.WithContext(c)
	detail, err := t.service.FindCustomerById(c, customerId)
	if err != nil {
		err = fmt.Errorf("failed finding customerId=%d with error=%w", customerId, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found customer")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("customerId=%d found", customerId),
		"data": map[string]interface{}{
			"customer": detail,
		},
	})
}

func (t CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController UpdateCustomer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController UpdateCustomer").
		Str(log.KeyProcess, "validating customerId").
		Logger()

	logger.Info().Msg("validating customerId")
	customerId, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		err = fmt.Errorf("failed validating customerId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyCustomerID, customerId).Logger()
	logger.Info().Msgf("validated customerId=%d", customerId)

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Customer{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating customer").Logger()
	logger.Info().Msg("updating customer")
	c = logger.WithContext(c)
	customer, err := t.service.UpdateCustomer(c, customerId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating customerId=%d with error=%w", customerId, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated customer")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated customer",
		"data": map[string]interface{}{
			"customer": customer,
		},
	})
}

func (t CustomerController) RemoveCustomer(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController RemoveCustomer")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController RemoveCustomer").
		Str(log.KeyProcess, "validating customerId").
		Logger()

	logger.Info().Msg("validating customerId")
	customerId, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		err = fmt.Errorf("failed validating customerId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyCustomerID, customerId).Logger()
	logger.Info().Msgf("validated customerId=%d", customerId)

	logger = logger.With().Str(log.KeyProcess, "removing customer").Logger()
	logger.Info().Msg("removing customer")
	c = logger.WithContext(c)
	customer, err := t.service.RemoveCustomer(c, customerId)
	if err != nil {
		err = fmt.Errorf("failed removing customerId=%d with error=%w", customerId, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed customer")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully removed customer",
		"data": map[string]interface{}{
			"customer": customer,
		},
	})
}

func (t CustomerController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController RecordPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController RecordPayment").
		Str(log.KeyProcess, "validating customerId").
		Logger()

	logger.Info().Msg("validating customerId")
	customerId, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		err = fmt.Errorf("failed validating customerId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyCustomerID, customerId).Logger()
	logger.Info().Msgf("validated customerId=%d", customerId)

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.RecordPayment{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "recording payment").Logger()
	logger.Info().Msg("recording payment")
	c = logger.WithContext(c)
	detail, err := t.service.RecordPayment(c, customerId, reqBody)
	if err != nil {
		err = fmt.Errorf(
			"failed recording payment for customerId=%d with error=%w",
			customerId,
			err,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("recorded payment")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully recorded payment",
		"data": map[string]interface{}{
			"customer": detail,
		},
	})
}

func (t CustomerController) ExportCsv(w http.ResponseWriter, r *http.Request) {
	c, span := inOtel.Tracer.Start(r.Context(), "CustomerController ExportCsv")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CustomerController ExportCsv").
		Str(log.KeyProcess, "exporting csv").
		Logger()

	logger.Info().Msg("exporting csv")
	c = logger.WithContext(c)
	out, err := t.service.ExportCsv(c)
	if err != nil {
		err = fmt.Errorf("failed exporting csv with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("exported csv")

	w.Header().Set(inHttp.HeaderContentType, inHttp.HeaderValueCsv)
	w.Header().Set(inHttp.HeaderContentDisposition, `attachment; filename="customers.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		logger.Error().Err(err).Msg("failed writing csv")
	}
}

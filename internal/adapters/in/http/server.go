// Package http exposes the fulfillment operations over a JSON REST API.
// Handlers translate between wire DTOs and the command/query layer; no
// domain rule lives here.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	selectCarrierHandler     commands.SelectCarrierCommandHandler
	dispatchOrderHandler     commands.DispatchOrderCommandHandler
	applyCarrierEventHandler commands.ApplyCarrierEventCommandHandler
	assignRiderHandler       commands.AssignRiderCommandHandler
	addStockHandler          commands.AddStockCommandHandler
	adjustStockHandler       commands.AdjustStockCommandHandler
	retireStockHandler       commands.RetireStockCommandHandler
	createInvoiceHandler     commands.CreateInvoiceCommandHandler
	approveInvoiceHandler    commands.ApproveInvoiceCommandHandler
	recordPaymentHandler     commands.RecordPaymentCommandHandler

	getOrderHandler      queries.GetOrderQueryHandler
	getOrdersHandler     queries.GetOrdersQueryHandler
	getStockHandler      queries.GetStockQueryHandler
	getStatementHandler  queries.GetStatementQueryHandler
	getPendingCODHandler queries.GetPendingCODQueryHandler
	getBranchesHandler   queries.GetBranchesQueryHandler

	// systemActorID is attributed to changes caused by carrier webhooks,
	// which carry no authenticated operator.
	systemActorID kernel.UUID
}

// Handlers bundles the use-case handlers the server fronts.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	TransitionOrder   commands.TransitionOrderCommandHandler
	SelectCarrier     commands.SelectCarrierCommandHandler
	DispatchOrder     commands.DispatchOrderCommandHandler
	ApplyCarrierEvent commands.ApplyCarrierEventCommandHandler
	AssignRider       commands.AssignRiderCommandHandler
	AddStock          commands.AddStockCommandHandler
	AdjustStock       commands.AdjustStockCommandHandler
	RetireStock       commands.RetireStockCommandHandler
	CreateInvoice     commands.CreateInvoiceCommandHandler
	ApproveInvoice    commands.ApproveInvoiceCommandHandler
	RecordPayment     commands.RecordPaymentCommandHandler

	GetOrder      queries.GetOrderQueryHandler
	GetOrders     queries.GetOrdersQueryHandler
	GetStock      queries.GetStockQueryHandler
	GetStatement  queries.GetStatementQueryHandler
	GetPendingCOD queries.GetPendingCODQueryHandler
	GetBranches   queries.GetBranchesQueryHandler
}

// NewServer creates an HTTP server over the given use-case handlers.
func NewServer(handlers Handlers, systemActorID kernel.UUID) *Server {
	return &Server{
		systemActorID:            systemActorID,
		createOrderHandler:       handlers.CreateOrder,
		transitionOrderHandler:   handlers.TransitionOrder,
		selectCarrierHandler:     handlers.SelectCarrier,
		dispatchOrderHandler:     handlers.DispatchOrder,
		applyCarrierEventHandler: handlers.ApplyCarrierEvent,
		assignRiderHandler:       handlers.AssignRider,
		addStockHandler:          handlers.AddStock,
		adjustStockHandler:       handlers.AdjustStock,
		retireStockHandler:       handlers.RetireStock,
		createInvoiceHandler:     handlers.CreateInvoice,
		approveInvoiceHandler:    handlers.ApproveInvoice,
		recordPaymentHandler:     handlers.RecordPayment,
		getOrderHandler:          handlers.GetOrder,
		getOrdersHandler:         handlers.GetOrders,
		getStockHandler:          handlers.GetStock,
		getStatementHandler:      handlers.GetStatement,
		getPendingCODHandler:     handlers.GetPendingCOD,
		getBranchesHandler:       handlers.GetBranches,
	}
}

// requestValidator adapts go-playground/validator to echo's Validator hook.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewEcho creates an echo instance with the server's routes registered.
func NewEcho(server *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	server.RegisterRoutes(e)
	return e
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/orders/code/:code", s.GetOrderByCode)
	v1.POST("/orders/:id/status", s.TransitionOrder)
	v1.POST("/orders/:id/carrier", s.SelectCarrier)
	v1.POST("/orders/:id/dispatch", s.DispatchOrder)
	v1.POST("/orders/:id/rider", s.AssignRider)

	v1.POST("/webhooks/:carrier", s.CarrierWebhook)
	v1.GET("/carriers/:carrier/branches", s.ListBranches)

	v1.POST("/stock", s.AddStock)
	v1.POST("/stock/adjust", s.AdjustStock)
	v1.POST("/stock/retire", s.RetireStock)
	v1.GET("/stock", s.ListStock)

	v1.POST("/invoices", s.CreateInvoice)
	v1.POST("/invoices/:id/approve", s.ApproveInvoice)
	v1.POST("/payments", s.RecordPayment)
	v1.GET("/franchises/:id/statement", s.GetStatement)
	v1.GET("/franchises/:id/pending-cod", s.GetPendingCOD)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps a use-case error onto an HTTP status and error payload.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrCarrierUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}
	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

// badRequest reports a malformed request body or parameter.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

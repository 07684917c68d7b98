package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one position of an order creation request.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	ActorID         string             `json:"actor_id" validate:"required,uuid"`
	ActorRole       string             `json:"actor_role" validate:"required"`
	OwnerKind       string             `json:"owner_kind" validate:"required"`
	OwnerID         string             `json:"owner_id" validate:"required,uuid"`
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerPhone   string             `json:"customer_phone" validate:"required"`
	CustomerAddress string             `json:"customer_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	TotalAmount     string             `json:"total_amount" validate:"required"`
	PrepaidAmount   string             `json:"prepaid_amount"`
	DeliveryCharge  string             `json:"delivery_charge"`
	Lines           []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// OrderLineResponse mirrors one order position on the wire.
type OrderLineResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderChangeResponse mirrors one status log row on the wire.
type OrderChangeResponse struct {
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ActorID    string    `json:"actor_id"`
	Comment    string    `json:"comment"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderRemarkResponse mirrors one remark on the wire.
type OrderRemarkResponse struct {
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderResponse is the full order wire representation.
type OrderResponse struct {
	ID              string                `json:"id"`
	Code            string                `json:"code"`
	OwnerKind       string                `json:"owner_kind"`
	OwnerID         string                `json:"owner_id"`
	CustomerName    string                `json:"customer_name"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address"`
	PaymentMethod   string                `json:"payment_method"`
	TotalAmount     string                `json:"total_amount"`
	PrepaidAmount   string                `json:"prepaid_amount"`
	DeliveryCharge  string                `json:"delivery_charge"`
	Status          string                `json:"status"`
	Logistics       *string               `json:"logistics,omitempty"`
	TrackingCode    string                `json:"tracking_code,omitempty"`
	RiderID         *string               `json:"rider_id,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Lines           []OrderLineResponse   `json:"lines"`
	Changes         []OrderChangeResponse `json:"changes,omitempty"`
	Remarks         []OrderRemarkResponse `json:"remarks,omitempty"`
}

func orderToResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID().String(),
		Code:            o.Code(),
		OwnerKind:       o.Owner().Kind().String(),
		OwnerID:         o.Owner().ID().String(),
		CustomerName:    o.Customer().Name,
		CustomerPhone:   o.Customer().Phone,
		CustomerAddress: o.Customer().Address,
		PaymentMethod:   string(o.PaymentMethod()),
		TotalAmount:     o.TotalAmount().String(),
		PrepaidAmount:   o.PrepaidAmount().String(),
		DeliveryCharge:  o.DeliveryCharge().String(),
		Status:          o.Status().String(),
		TrackingCode:    o.TrackingCode(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	if c := o.Logistics(); c != nil {
		name := c.String()
		resp.Logistics = &name
	}
	if r := o.Rider(); r != nil {
		id := r.String()
		resp.RiderID = &id
	}
	for _, line := range o.Lines() {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
		})
	}
	return resp
}

func orderReadModelToResponse(m queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:              m.ID.String(),
		Code:            m.Code,
		OwnerKind:       m.Owner.Kind().String(),
		OwnerID:         m.Owner.ID().String(),
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		CustomerAddress: m.CustomerAddr,
		PaymentMethod:   string(m.PaymentMethod),
		TotalAmount:     m.TotalAmount.String(),
		PrepaidAmount:   m.PrepaidAmount.String(),
		DeliveryCharge:  m.DeliveryCharge.String(),
		Status:          m.Status.String(),
		TrackingCode:    m.TrackingCode,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Logistics != nil {
		name := m.Logistics.String()
		resp.Logistics = &name
	}
	if m.RiderID != nil {
		id := m.RiderID.String()
		resp.RiderID = &id
	}
	for _, line := range m.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
		})
	}
	for _, change := range m.Changes {
		resp.Changes = append(resp.Changes, OrderChangeResponse{
			OldStatus:  change.OldStatus.String(),
			NewStatus:  change.NewStatus.String(),
			ActorID:    change.ActorID.String(),
			Comment:    change.Comment,
			OccurredAt: change.OccurredAt,
		})
	}
	for _, remark := range m.Remarks {
		resp.Remarks = append(resp.Remarks, OrderRemarkResponse{
			Text:       remark.Text,
			OccurredAt: remark.OccurredAt,
		})
	}
	return resp
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}
	role, err := kernel.RoleFromString(req.ActorRole)
	if err != nil {
		return fail(ctx, err)
	}
	kind, err := kernel.OwnerKindFromString(req.OwnerKind)
	if err != nil {
		return fail(ctx, err)
	}
	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return fail(ctx, err)
	}
	owner, err := kernel.NewOwnerRef(kind, ownerID)
	if err != nil {
		return fail(ctx, err)
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return badRequest(ctx, "invalid total_amount")
	}
	prepaid := decimal.Zero
	if req.PrepaidAmount != "" {
		if prepaid, err = decimal.NewFromString(req.PrepaidAmount); err != nil {
			return badRequest(ctx, "invalid prepaid_amount")
		}
	}
	charge := decimal.Zero
	if req.DeliveryCharge != "" {
		if charge, err = decimal.NewFromString(req.DeliveryCharge); err != nil {
			return badRequest(ctx, "invalid delivery_charge")
		}
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, lineErr := kernel.UUIDFromString(l.ProductID)
		if lineErr != nil {
			return fail(ctx, lineErr)
		}
		lines = append(lines, order.Line{ProductID: productID, Quantity: l.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		actorID,
		role,
		owner,
		order.Customer{Name: req.CustomerName, Phone: req.CustomerPhone, Address: req.CustomerAddress},
		lines,
		order.PaymentMethod(req.PaymentMethod),
		total,
		prepaid,
		charge,
	)
	if err != nil {
		return fail(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetOrderQueryByID(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	model, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderReadModelToResponse(model))
}

// GetOrderByCode handles GET /api/v1/orders/code/:code.
func (s *Server) GetOrderByCode(ctx echo.Context) error {
	query, err := queries.NewGetOrderQueryByCode(ctx.Param("code"))
	if err != nil {
		return fail(ctx, err)
	}

	model, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderReadModelToResponse(model))
}

// OrderSummaryResponse is one row of an order listing.
type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Status        string    `json:"status"`
	TotalAmount   string    `json:"total_amount"`
	Logistics     *string   `json:"logistics,omitempty"`
	TrackingCode  string    `json:"tracking_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListOrders handles GET /api/v1/orders?owner_kind=&owner_id=&status=.
func (s *Server) ListOrders(ctx echo.Context) error {
	kind, err := kernel.OwnerKindFromString(ctx.QueryParam("owner_kind"))
	if err != nil {
		return fail(ctx, err)
	}
	ownerID, err := kernel.UUIDFromString(ctx.QueryParam("owner_id"))
	if err != nil {
		return fail(ctx, err)
	}
	owner, err := kernel.NewOwnerRef(kind, ownerID)
	if err != nil {
		return fail(ctx, err)
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return fail(ctx, statusErr)
		}
		statusFilter = &status
	}

	query, err := queries.NewGetOrdersQuery(owner, statusFilter)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		summary := OrderSummaryResponse{
			ID:            row.ID.String(),
			Code:          row.Code,
			CustomerName:  row.CustomerName,
			CustomerPhone: row.CustomerPhone,
			Status:        row.Status.String(),
			TotalAmount:   row.TotalAmount.String(),
			TrackingCode:  row.TrackingCode,
			CreatedAt:     row.CreatedAt,
		}
		if row.Logistics != nil {
			name := row.Logistics.String()
			summary.Logistics = &name
		}
		response = append(response, summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrderRequest is the POST /orders/:id/status payload.
type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status" validate:"required"`
	Comment      string `json:"comment"`
	ActorID      string `json:"actor_id" validate:"required,uuid"`
}

// TransitionOrder handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	status, err := order.StatusFromString(req.TargetStatus)
	if err != nil {
		return fail(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, status, actorID, req.Comment)
	if err != nil {
		return fail(ctx, err)
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// SelectCarrierRequest is the POST /orders/:id/carrier payload.
type SelectCarrierRequest struct {
	Carrier string `json:"carrier" validate:"required"`
	ActorID string `json:"actor_id" validate:"required,uuid"`
}

// SelectCarrier handles POST /api/v1/orders/:id/carrier.
func (s *Server) SelectCarrier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	var req SelectCarrierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	carrier, err := order.CarrierFromString(req.Carrier)
	if err != nil {
		return fail(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewSelectCarrierCommand(orderID, carrier, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	updated, err := s.selectCarrierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// DispatchOrderRequest is the POST /orders/:id/dispatch payload.
type DispatchOrderRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid"`
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	var req DispatchOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	dispatched, err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(dispatched))
}

// AssignRiderRequest is the POST /orders/:id/rider payload.
type AssignRiderRequest struct {
	RiderID string `json:"rider_id" validate:"required,uuid"`
	ActorID string `json:"actor_id" validate:"required,uuid"`
}

// AssignRider handles POST /api/v1/orders/:id/rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	var req AssignRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return fail(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, riderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	updated, err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

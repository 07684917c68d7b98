package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// StockRecordResponse is one stock record on the wire.
type StockRecordResponse struct {
	ID          string `json:"id"`
	OwnerKind   string `json:"owner_kind"`
	OwnerID     string `json:"owner_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Status      string `json:"status"`
	Quantity    int    `json:"quantity"`
}

func recordToResponse(r *inventory.Record) StockRecordResponse {
	return StockRecordResponse{
		ID:          r.ID().String(),
		OwnerKind:   r.Owner().Kind().String(),
		OwnerID:     r.Owner().ID().String(),
		ProductID:   r.ProductID().String(),
		ProductName: r.ProductName(),
		Status:      string(r.Status()),
		Quantity:    r.Quantity(),
	}
}

func ownerFromRequest(kindRaw, idRaw string) (kernel.OwnerRef, error) {
	kind, err := kernel.OwnerKindFromString(kindRaw)
	if err != nil {
		return kernel.OwnerRef{}, err
	}
	ownerID, err := kernel.UUIDFromString(idRaw)
	if err != nil {
		return kernel.OwnerRef{}, err
	}
	return kernel.NewOwnerRef(kind, ownerID)
}

// AddStockRequest is the POST /stock payload.
type AddStockRequest struct {
	OwnerKind   string `json:"owner_kind" validate:"required"`
	OwnerID     string `json:"owner_id" validate:"required,uuid"`
	ProductID   string `json:"product_id" validate:"required,uuid"`
	ProductName string `json:"product_name" validate:"required"`
	Status      string `json:"status" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	ActorID     string `json:"actor_id" validate:"required,uuid"`
}

// AddStock handles POST /api/v1/stock. Crediting an existing record and
// creating a missing one are the same operation for the caller.
func (s *Server) AddStock(ctx echo.Context) error {
	var req AddStockRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	owner, err := ownerFromRequest(req.OwnerKind, req.OwnerID)
	if err != nil {
		return fail(ctx, err)
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return fail(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewAddStockCommand(
		owner, productID, req.ProductName, inventory.StockStatus(req.Status), req.Quantity, actorID,
	)
	if err != nil {
		return fail(ctx, err)
	}

	record, err := s.addStockHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, recordToResponse(record))
}

// AdjustStockRequest is the POST /stock/adjust payload.
type AdjustStockRequest struct {
	OwnerKind   string `json:"owner_kind" validate:"required"`
	OwnerID     string `json:"owner_id" validate:"required,uuid"`
	ProductID   string `json:"product_id" validate:"required,uuid"`
	NewQuantity int    `json:"new_quantity" validate:"gte=0"`
	ActorID     string `json:"actor_id" validate:"required,uuid"`
}

// AdjustStock handles POST /api/v1/stock/adjust.
func (s *Server) AdjustStock(ctx echo.Context) error {
	var req AdjustStockRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	owner, err := ownerFromRequest(req.OwnerKind, req.OwnerID)
	if err != nil {
		return fail(ctx, err)
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return fail(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewAdjustStockCommand(owner, productID, req.NewQuantity, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	record, err := s.adjustStockHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, recordToResponse(record))
}

// RetireStockRequest is the POST /stock/retire payload.
type RetireStockRequest struct {
	OwnerKind string `json:"owner_kind" validate:"required"`
	OwnerID   string `json:"owner_id" validate:"required,uuid"`
	ProductID string `json:"product_id" validate:"required,uuid"`
	ActorID   string `json:"actor_id" validate:"required,uuid"`
}

// RetireStock handles POST /api/v1/stock/retire.
func (s *Server) RetireStock(ctx echo.Context) error {
	var req RetireStockRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	owner, err := ownerFromRequest(req.OwnerKind, req.OwnerID)
	if err != nil {
		return fail(ctx, err)
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return fail(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewRetireStockCommand(owner, productID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	record, err := s.retireStockHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, recordToResponse(record))
}

// ListStock handles GET /api/v1/stock?owner_kind=&owner_id=.
func (s *Server) ListStock(ctx echo.Context) error {
	owner, err := ownerFromRequest(ctx.QueryParam("owner_kind"), ctx.QueryParam("owner_id"))
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetStockQuery(owner)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.getStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]StockRecordResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, StockRecordResponse{
			ID:          row.ID.String(),
			OwnerKind:   owner.Kind().String(),
			OwnerID:     owner.ID().String(),
			ProductID:   row.ProductID.String(),
			ProductName: row.ProductName,
			Status:      string(row.Status),
			Quantity:    row.Quantity,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

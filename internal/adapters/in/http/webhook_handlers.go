package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CarrierWebhookRequest is the POST /webhooks/:carrier payload. Status
// carries the carrier's raw vocabulary; translation happens downstream.
type CarrierWebhookRequest struct {
	TrackingCode string `json:"tracking_code" validate:"required"`
	Status       string `json:"status" validate:"required"`
	Comment      string `json:"comment"`
}

// CarrierWebhookResponse tells the carrier whether the event changed the
// order. Carriers only check for a 2xx; Applied is for our own diagnostics.
type CarrierWebhookResponse struct {
	Applied bool `json:"applied"`
}

// CarrierWebhook handles POST /api/v1/webhooks/:carrier. A recognized
// carrier always gets a 2xx back (unrecognized statuses and unknown tracking
// codes included) so the sender never retries what we have safely absorbed.
func (s *Server) CarrierWebhook(ctx echo.Context) error {
	carrier, err := order.CarrierFromString(ctx.Param("carrier"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "unknown carrier",
		})
	}

	var req CarrierWebhookRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewApplyCarrierEventCommand(
		carrier, req.TrackingCode, req.Status, req.Comment, s.systemActorID,
	)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.applyCarrierEventHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		// An unknown tracking code is the carrier's problem, not a reason
		// to make it retry.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusOK, CarrierWebhookResponse{Applied: false})
		}
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CarrierWebhookResponse{Applied: result.Applied})
}

// BranchResponse is one serviceable carrier branch on the wire.
type BranchResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ListBranches handles GET /api/v1/carriers/:carrier/branches.
func (s *Server) ListBranches(ctx echo.Context) error {
	carrier, err := order.CarrierFromString(ctx.Param("carrier"))
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetBranchesQuery(carrier)
	if err != nil {
		return fail(ctx, err)
	}

	branches, err := s.getBranchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		response = append(response, BranchResponse{ID: b.ID, Name: b.Name, City: b.City})
	}

	return ctx.JSON(http.StatusOK, response)
}

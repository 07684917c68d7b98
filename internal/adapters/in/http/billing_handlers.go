package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// InvoiceResponse is one payment claim on the wire.
type InvoiceResponse struct {
	ID          string     `json:"id"`
	FranchiseID string     `json:"franchise_id"`
	PaidAmount  string     `json:"paid_amount"`
	Approved    bool       `json:"approved"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  *string    `json:"approved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func invoiceToResponse(inv *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID().String(),
		FranchiseID: inv.FranchiseID().String(),
		PaidAmount:  inv.PaidAmount().String(),
		Approved:    inv.IsApproved(),
		ApprovedAt:  inv.ApprovedAt(),
		CreatedAt:   inv.CreatedAt(),
	}
	if by := inv.ApprovedBy(); by != nil {
		id := by.String()
		resp.ApprovedBy = &id
	}
	return resp
}

// CreateInvoiceRequest is the POST /invoices payload.
type CreateInvoiceRequest struct {
	FranchiseID string `json:"franchise_id" validate:"required,uuid"`
	PaidAmount  string `json:"paid_amount" validate:"required"`
}

// CreateInvoice handles POST /api/v1/invoices.
func (s *Server) CreateInvoice(ctx echo.Context) error {
	var req CreateInvoiceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	franchiseID, err := kernel.UUIDFromString(req.FranchiseID)
	if err != nil {
		return fail(ctx, err)
	}
	amount, err := decimal.NewFromString(req.PaidAmount)
	if err != nil {
		return badRequest(ctx, "invalid paid_amount")
	}

	cmd, err := commands.NewCreateInvoiceCommand(franchiseID, amount)
	if err != nil {
		return fail(ctx, err)
	}

	created, err := s.createInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, invoiceToResponse(created))
}

// ApproveInvoiceRequest is the POST /invoices/:id/approve payload.
type ApproveInvoiceRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid"`
}

// ApproveInvoice handles POST /api/v1/invoices/:id/approve.
func (s *Server) ApproveInvoice(ctx echo.Context) error {
	invoiceID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	var req ApproveInvoiceRequest
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

	cmd, err := commands.NewApproveInvoiceCommand(invoiceID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	approved, err := s.approveInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, invoiceToResponse(approved))
}

// RecordPaymentRequest is the POST /payments payload.
type RecordPaymentRequest struct {
	FranchiseID string    `json:"franchise_id" validate:"required,uuid"`
	Amount      string    `json:"amount" validate:"required"`
	Note        string    `json:"note"`
	PaidAt      time.Time `json:"paid_at" validate:"required"`
}

// PaymentLogResponse is one informational payment note on the wire.
type PaymentLogResponse struct {
	ID          string    `json:"id"`
	FranchiseID string    `json:"franchise_id"`
	Amount      string    `json:"amount"`
	Note        string    `json:"note"`
	PaidAt      time.Time `json:"paid_at"`
}

// RecordPayment handles POST /api/v1/payments. The log is informational;
// only approved invoices move the reconciliation balance.
func (s *Server) RecordPayment(ctx echo.Context) error {
	var req RecordPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	franchiseID, err := kernel.UUIDFromString(req.FranchiseID)
	if err != nil {
		return fail(ctx, err)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "invalid amount")
	}

	cmd, err := commands.NewRecordPaymentCommand(franchiseID, amount, req.Note, req.PaidAt)
	if err != nil {
		return fail(ctx, err)
	}

	log, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PaymentLogResponse{
		ID:          log.ID.String(),
		FranchiseID: log.FranchiseID.String(),
		Amount:      log.Amount.String(),
		Note:        log.Note,
		PaidAt:      log.PaidAt,
	})
}

// DayStatementResponse is one statement row on the wire.
type DayStatementResponse struct {
	Date             string `json:"date"`
	DispatchedCount  int    `json:"dispatched_count"`
	DispatchedAmount string `json:"dispatched_amount"`
	DeliveredCount   int    `json:"delivered_count"`
	CashIn           string `json:"cash_in"`
	DeliveryCharges  string `json:"delivery_charges"`
	ApprovedPayments string `json:"approved_payments"`
	Balance          string `json:"balance"`
}

// StatementResponse is the GET /franchises/:id/statement payload.
type StatementResponse struct {
	FranchiseID    string                 `json:"franchise_id"`
	OpeningBalance string                 `json:"opening_balance"`
	Days           []DayStatementResponse `json:"days"`
	ClosingBalance string                 `json:"closing_balance"`
}

// GetStatement handles GET /api/v1/franchises/:id/statement?start=&end=
// with both bounds as inclusive ISO dates.
func (s *Server) GetStatement(ctx echo.Context) error {
	franchiseID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	start, err := time.Parse("2006-01-02", ctx.QueryParam("start"))
	if err != nil {
		return badRequest(ctx, "invalid start date, want YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", ctx.QueryParam("end"))
	if err != nil {
		return badRequest(ctx, "invalid end date, want YYYY-MM-DD")
	}

	query, err := queries.NewGetStatementQuery(franchiseID, start, end)
	if err != nil {
		return fail(ctx, err)
	}

	statement, err := s.getStatementHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := StatementResponse{
		FranchiseID:    franchiseID.String(),
		OpeningBalance: statement.OpeningBalance.String(),
		ClosingBalance: statement.ClosingBalance.String(),
		Days:           make([]DayStatementResponse, 0, len(statement.Days)),
	}
	for _, day := range statement.Days {
		response.Days = append(response.Days, DayStatementResponse{
			Date:             day.Date.Format("2006-01-02"),
			DispatchedCount:  day.DispatchedCount,
			DispatchedAmount: day.DispatchedAmount.String(),
			DeliveredCount:   day.DeliveredCount,
			CashIn:           day.CashIn.String(),
			DeliveryCharges:  day.DeliveryCharges.String(),
			ApprovedPayments: day.ApprovedPayments.String(),
			Balance:          day.Balance.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// PendingCODResponse is the GET /franchises/:id/pending-cod payload.
type PendingCODResponse struct {
	FranchiseID string `json:"franchise_id"`
	Pending     string `json:"pending"`
}

// GetPendingCOD handles GET /api/v1/franchises/:id/pending-cod.
func (s *Server) GetPendingCOD(ctx echo.Context) error {
	franchiseID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetPendingCODQuery(franchiseID)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.getPendingCODHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PendingCODResponse{
		FranchiseID: result.FranchiseID.String(),
		Pending:     result.Pending.String(),
	})
}

package http

import (
	"net/http"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/application/usecases/queries"
	"eatify/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

var _ ServerInterface = &Server{}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AcceptOrder     commands.AcceptOrderCommandHandler
	AssignPartner   commands.AssignPartnerCommandHandler
	IssueCode       commands.IssueCodeCommandHandler
	ReissueCode     commands.ReissueCodeCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	ReconcileOrders commands.ReconcileOrdersCommandHandler

	GetProjection queries.GetProjectionQueryHandler
	ListActive    queries.ListActiveQueryHandler
	ListHistory   queries.ListHistoryQueryHandler
	GetEarnings   queries.GetEarningsQueryHandler
	VerifyPayment queries.VerifyPaymentQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// CreateOrder handles POST /api/v1/orders - places a paid order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "validation", "Invalid request body")
	}

	cmd, err := req.toCommand(actorFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ListActive handles GET /api/v1/orders - the caller's active projections.
func (s *Server) ListActive(ctx echo.Context, params ListActiveParams) error {
	var filter string
	if params.Filter != nil {
		filter = *params.Filter
	}

	list, err := s.h.ListActive.Handle(ctx.Request().Context(), queries.NewListActiveQuery(actorFrom(ctx), filter))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProjectionListResponse(list))
}

// GetProjection handles GET /api/v1/orders/{orderId}.
func (s *Server) GetProjection(ctx echo.Context, orderID string) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetProjectionQuery(actorFrom(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.h.GetProjection.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProjectionResponse(result))
}

func (s *Server) AcceptOrder(ctx echo.Context, orderID string) error {
	cmd, err := commands.NewAcceptOrderCommand(actorFrom(ctx), kernel.OrderID(orderID))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignPartner handles POST /api/v1/orders/{orderId}/assign. The partner is the
// calling delivery actor; the body only adds the name and phone.
func (s *Server) AssignPartner(ctx echo.Context, orderID string) error {
	var req AssignPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "validation", "Invalid request body")
	}

	actor := actorFrom(ctx)
	partner, err := kernel.NewParty(req.Name, actor.Email(), req.Phone, "")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignPartnerCommand(actor, kernel.OrderID(orderID), partner)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.AssignPartner.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// IssueCode handles POST /api/v1/orders/{orderId}/code. The digits go to the customer
// through the notifier and never appear in the response.
func (s *Server) IssueCode(ctx echo.Context, orderID string) error {
	cmd, err := commands.NewIssueCodeCommand(actorFrom(ctx), kernel.OrderID(orderID))
	if err != nil {
		return respondError(ctx, err)
	}

	issued, err := s.h.IssueCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, IssuedCodeResponse{OrderID: issued.OrderID.String(), ExpiresAt: issued.ExpiresAt})
}

func (s *Server) ReissueCode(ctx echo.Context, orderID string) error {
	cmd, err := commands.NewReissueCodeCommand(actorFrom(ctx), kernel.OrderID(orderID))
	if err != nil {
		return respondError(ctx, err)
	}

	issued, err := s.h.ReissueCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, IssuedCodeResponse{OrderID: issued.OrderID.String(), ExpiresAt: issued.ExpiresAt})
}

func (s *Server) ConfirmDelivery(ctx echo.Context, orderID string) error {
	var req ConfirmDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "validation", "Invalid request body")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actorFrom(ctx), kernel.OrderID(orderID), req.Code)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.ConfirmDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CancelOrder(ctx echo.Context, orderID string) error {
	var req CancelOrderRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&req); err != nil {
			return writeError(ctx, http.StatusBadRequest, "validation", "Invalid request body")
		}
	}

	cmd, err := commands.NewCancelOrderCommand(actorFrom(ctx), kernel.OrderID(orderID), req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListHistory handles GET /api/v1/history - the caller's previous orders, newest first.
func (s *Server) ListHistory(ctx echo.Context) error {
	query, err := queries.NewListHistoryQuery(actorFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.h.ListHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPreviousOrderResponses(entries))
}

func (s *Server) GetEarnings(ctx echo.Context) error {
	query, err := queries.NewGetEarningsQuery(actorFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	earnings, err := s.h.GetEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EarningsResponse{Total: earnings.Total.String(), Orders: earnings.Orders})
}

// VerifyPayment handles POST /api/v1/payments/verify. It runs before an order exists,
// so no actor is required.
func (s *Server) VerifyPayment(ctx echo.Context) error {
	var req VerifyPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "validation", "Invalid request body")
	}

	query := queries.NewVerifyPaymentQuery(req.GatewayOrderID, req.PaymentID, req.Signature)
	valid, err := s.h.VerifyPayment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, VerifyPaymentResponse{Valid: valid})
}

// Reconcile handles POST /api/v1/admin/reconcile, reserved to the system actor.
func (s *Server) Reconcile(ctx echo.Context, params ReconcileParams) error {
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	cmd, err := commands.NewReconcileOrdersCommand(actorFrom(ctx), limit)
	if err != nil {
		return respondError(ctx, err)
	}

	report, err := s.h.ReconcileOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, report)
}

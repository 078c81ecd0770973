package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const BaseURL = "/api/v1"

// ServerInterface lists one method per operation of the embedded OpenAPI document.
type ServerInterface interface {
	CreateOrder(ctx echo.Context) error
	ListActive(ctx echo.Context, params ListActiveParams) error
	GetProjection(ctx echo.Context, orderID string) error
	AcceptOrder(ctx echo.Context, orderID string) error
	AssignPartner(ctx echo.Context, orderID string) error
	IssueCode(ctx echo.Context, orderID string) error
	ReissueCode(ctx echo.Context, orderID string) error
	ConfirmDelivery(ctx echo.Context, orderID string) error
	CancelOrder(ctx echo.Context, orderID string) error
	ListHistory(ctx echo.Context) error
	GetEarnings(ctx echo.Context) error
	VerifyPayment(ctx echo.Context) error
	Reconcile(ctx echo.Context, params ReconcileParams) error
}

type ListActiveParams struct {
	Filter *string
}

type ReconcileParams struct {
	Limit *int
}

// ServerInterfaceWrapper binds path and query parameters before calling the server.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// withOrderID binds the orderId path parameter and hands it to op.
func (w *ServerInterfaceWrapper) withOrderID(op func(echo.Context, string) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var orderID string
		err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return writeError(ctx, http.StatusBadRequest, "validation", "invalid format for parameter orderId: "+err.Error())
		}
		return op(ctx, orderID)
	}
}

func (w *ServerInterfaceWrapper) ListActive(ctx echo.Context) error {
	var params ListActiveParams
	if err := runtime.BindQueryParameter("form", true, false, "filter", ctx.QueryParams(), &params.Filter); err != nil {
		return writeError(ctx, http.StatusBadRequest, "validation", "invalid format for parameter filter: "+err.Error())
	}
	return w.Handler.ListActive(ctx, params)
}

func (w *ServerInterfaceWrapper) Reconcile(ctx echo.Context) error {
	var params ReconcileParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return writeError(ctx, http.StatusBadRequest, "validation", "invalid format for parameter limit: "+err.Error())
	}
	return w.Handler.Reconcile(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under BaseURL. Operations acting for a caller
// go through actor, payment verification does not.
func RegisterHandlers(router EchoRouter, si ServerInterface, actor echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST(BaseURL+"/orders", si.CreateOrder, actor)
	router.GET(BaseURL+"/orders", w.ListActive, actor)
	router.GET(BaseURL+"/orders/:orderId", w.withOrderID(si.GetProjection), actor)
	router.POST(BaseURL+"/orders/:orderId/accept", w.withOrderID(si.AcceptOrder), actor)
	router.POST(BaseURL+"/orders/:orderId/assign", w.withOrderID(si.AssignPartner), actor)
	router.POST(BaseURL+"/orders/:orderId/code", w.withOrderID(si.IssueCode), actor)
	router.POST(BaseURL+"/orders/:orderId/code/reissue", w.withOrderID(si.ReissueCode), actor)
	router.POST(BaseURL+"/orders/:orderId/confirm", w.withOrderID(si.ConfirmDelivery), actor)
	router.POST(BaseURL+"/orders/:orderId/cancel", w.withOrderID(si.CancelOrder), actor)
	router.GET(BaseURL+"/history", si.ListHistory, actor)
	router.GET(BaseURL+"/earnings", si.GetEarnings, actor)
	router.POST(BaseURL+"/admin/reconcile", w.Reconcile, actor)
	router.POST(BaseURL+"/payments/verify", si.VerifyPayment)
}

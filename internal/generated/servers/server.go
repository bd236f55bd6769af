// Package servers holds the HTTP contract of the service: the request and response
// models, the ServerInterface implemented by the HTTP adapter and the embedded
// OpenAPI document the models are derived from.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Audit entries, most recent first
	// (GET /api/v1/audit)
	ListAuditEntries(ctx echo.Context, params ListAuditEntriesParams) error
	// Read the catalog configuration
	// (GET /api/v1/catalog)
	GetCatalog(ctx echo.Context) error
	// Replace the catalog configuration
	// (PUT /api/v1/catalog)
	UpdateCatalog(ctx echo.Context) error
	// Register a client
	// (POST /api/v1/clients)
	CreateClient(ctx echo.Context) error
	// Create a payment batch
	// (POST /api/v1/finance/batches)
	CreatePaymentBatch(ctx echo.Context) error
	// Unsettled finance entries
	// (GET /api/v1/finance/entries)
	ListUnsettledEntries(ctx echo.Context, params ListUnsettledEntriesParams) error
	// Check margins and batch totals
	// (GET /api/v1/finance/integrity)
	VerifyLedger(ctx echo.Context) error
	// Liveness probe
	// (GET /api/v1/health)
	GetHealth(ctx echo.Context) error
	// Find stored objects no record refers to
	// (POST /api/v1/maintenance/orphaned-objects)
	CleanOrphanedObjects(ctx echo.Context) error
	// List orders, newest first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Take a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Delete an order
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId OrderId) error
	// Order details
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Edit a CREATED order
	// (PATCH /api/v1/orders/{orderId})
	EditOrder(ctx echo.Context, orderId OrderId) error
	// Regenerate the order document
	// (POST /api/v1/orders/{orderId}/documents)
	ExportOrderDocument(ctx echo.Context, orderId OrderId) error
	// Fire a lifecycle trigger
	// (POST /api/v1/orders/{orderId}/transitions)
	TransitionOrder(ctx echo.Context, orderId OrderId) error
	// Upload a photo
	// (POST /api/v1/photos)
	UploadPhoto(ctx echo.Context) error
	// Counters of clients, orders and the ledger
	// (GET /api/v1/stats)
	GetStatistics(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListAuditEntries(ctx echo.Context) error {
	var params ListAuditEntriesParams

	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListAuditEntries(ctx, params)
}

func (w *ServerInterfaceWrapper) GetCatalog(ctx echo.Context) error {
	return w.Handler.GetCatalog(ctx)
}

func (w *ServerInterfaceWrapper) UpdateCatalog(ctx echo.Context) error {
	return w.Handler.UpdateCatalog(ctx)
}

func (w *ServerInterfaceWrapper) CreateClient(ctx echo.Context) error {
	return w.Handler.CreateClient(ctx)
}

func (w *ServerInterfaceWrapper) CreatePaymentBatch(ctx echo.Context) error {
	return w.Handler.CreatePaymentBatch(ctx)
}

func (w *ServerInterfaceWrapper) ListUnsettledEntries(ctx echo.Context) error {
	var params ListUnsettledEntriesParams

	err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.ListUnsettledEntries(ctx, params)
}

func (w *ServerInterfaceWrapper) VerifyLedger(ctx echo.Context) error {
	return w.Handler.VerifyLedger(ctx)
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) CleanOrphanedObjects(ctx echo.Context) error {
	return w.Handler.CleanOrphanedObjects(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) EditOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.EditOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ExportOrderDocument(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ExportOrderDocument(ctx, orderId)
}

func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TransitionOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UploadPhoto(ctx echo.Context) error {
	return w.Handler.UploadPhoto(ctx)
}

func (w *ServerInterfaceWrapper) GetStatistics(ctx echo.Context) error {
	return w.Handler.GetStatistics(ctx)
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/audit", wrapper.ListAuditEntries)
	router.GET(baseURL+"/api/v1/catalog", wrapper.GetCatalog)
	router.PUT(baseURL+"/api/v1/catalog", wrapper.UpdateCatalog)
	router.POST(baseURL+"/api/v1/clients", wrapper.CreateClient)
	router.POST(baseURL+"/api/v1/finance/batches", wrapper.CreatePaymentBatch)
	router.GET(baseURL+"/api/v1/finance/entries", wrapper.ListUnsettledEntries)
	router.GET(baseURL+"/api/v1/finance/integrity", wrapper.VerifyLedger)
	router.GET(baseURL+"/api/v1/health", wrapper.GetHealth)
	router.POST(baseURL+"/api/v1/maintenance/orphaned-objects", wrapper.CleanOrphanedObjects)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.DELETE(baseURL+"/api/v1/orders/:orderId", wrapper.DeleteOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId", wrapper.EditOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/documents", wrapper.ExportOrderDocument)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.TransitionOrder)
	router.POST(baseURL+"/api/v1/photos", wrapper.UploadPhoto)
	router.GET(baseURL+"/api/v1/stats", wrapper.GetStatistics)
}

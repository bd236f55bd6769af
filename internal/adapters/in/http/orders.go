package http

import (
	"errors"
	"net/http"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, idErr := kernel.NewID(body.ClientId)
	priceCost, costErr := parseMoney("price_cost", body.PriceCost)
	priceSale, saleErr := parseMoney("price_sale", body.PriceSale)
	notes, notesErr := parseNotes(body.Notes)
	if err := errors.Join(idErr, costErr, saleErr, notesErr); err != nil {
		return s.fail(ctx, err)
	}

	details := order.Details{Notes: notes, Photos: derefStrings(body.Photos)}
	if body.FreeNotes != nil {
		details.FreeNotes = *body.FreeNotes
	}

	cmd, err := commands.NewCreateOrderCommand(
		clientID,
		order.Selection{Category: body.Category, Type: body.Type, Product: body.Product},
		priceCost, priceSale,
		details,
		actorFrom(ctx),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Int64()})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.StatusFromString(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.queries.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = toOrderSummary(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.NewID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	details, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := toOrderDetails(details)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// EditOrder handles PATCH /api/v1/orders/{orderId}.
func (s *Server) EditOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.OrderEdit
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, idErr := kernel.NewID(orderId)
	priceCost, costErr := parseOptionalMoney("price_cost", body.PriceCost)
	priceSale, saleErr := parseOptionalMoney("price_sale", body.PriceSale)
	if err := errors.Join(idErr, costErr, saleErr); err != nil {
		return s.fail(ctx, err)
	}

	edit := order.Edit{PriceCost: priceCost, PriceSale: priceSale, FreeNotes: body.FreeNotes}
	if body.Notes != nil {
		notes, err := parseNotes(body.Notes)
		if err != nil {
			return s.fail(ctx, err)
		}
		edit.Notes = &notes
	}

	cmd, err := commands.NewEditOrderCommand(id, edit, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	edited, err := s.commands.EditOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respondOrder(ctx, edited)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.NewID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, idErr := kernel.NewID(orderId)
	trigger, triggerErr := order.TriggerFromString(body.Trigger)
	if err := errors.Join(idErr, triggerErr); err != nil {
		return s.fail(ctx, err)
	}

	opts, err := transitionOptions(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(id, trigger, actorFrom(ctx), opts...)
	if err != nil {
		return s.fail(ctx, err)
	}

	moved, err := s.commands.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respondOrder(ctx, moved)
}

// ExportOrderDocument handles POST /api/v1/orders/{orderId}/documents.
func (s *Server) ExportOrderDocument(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.NewID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewExportOrderDocumentCommand(id, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	ref, err := s.commands.ExportOrderDocument.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Reference{Ref: ref})
}

func (s *Server) respondOrder(ctx echo.Context, o *order.Order) error {
	response, err := toOrder(o)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

func transitionOptions(body servers.TransitionRequest) ([]commands.TransitionOption, error) {
	var opts []commands.TransitionOption

	if body.Medium != nil {
		opts = append(opts, commands.WithShipmentMedium(*body.Medium))
	}

	if body.PriceRevision != nil {
		priceCost, costErr := parseOptionalMoney("price_cost", body.PriceRevision.PriceCost)
		priceSale, saleErr := parseOptionalMoney("price_sale", body.PriceRevision.PriceSale)
		if err := errors.Join(costErr, saleErr); err != nil {
			return nil, err
		}
		opts = append(opts, commands.WithPriceRevision(commands.PriceRevision{
			PriceCost: priceCost,
			PriceSale: priceSale,
		}))
	}

	if nc := body.Nonconformity; nc != nil {
		report := order.NonConformityReport{
			Kind:        order.NonConformityKind(nc.Kind),
			Description: nc.Description,
			Photos:      derefStrings(nc.Photos),
		}
		if nc.Count != nil {
			report.Count = *nc.Count
		}
		opts = append(opts, commands.WithNonConformity(report))
	}

	return opts, nil
}

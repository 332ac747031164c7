package http

import (
	"errors"
	"net/http"

	"github.com/u44592/hni/internal/core/application/usecases/commands"
	"github.com/u44592/hni/internal/core/application/usecases/queries"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	orders, err := s.openOrders.Handle(ctx.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to list open orders", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:               o.ID.Bytes(),
			UserID:           o.UserID.Bytes(),
			CreatedAt:        o.CreatedAt,
			LocationName:     o.LocationName,
			LocationAddress1: o.LocationAddress1,
			Items:            o.Items,
			SubtotalCents:    o.Subtotal.Cents(),
			Subtotal:         o.Subtotal.String(),
			Status:           o.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var body StatusChange
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change: " + err.Error(),
		})
	}

	if handleErr := s.statusUpdater.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(handleErr, errs.ErrValueIsInvalid):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: handleErr.Error(),
			})
		default:
			s.logger.ErrorContext(ctx.Request().Context(), "failed to update order status",
				"order_id", orderID.String(), "error", handleErr)
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to update order",
			})
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/principal"

	"github.com/labstack/echo/v4"
)

// RegisterOrder handles POST /api/v1/orders.
func (s *Server) RegisterOrder(c echo.Context) error {
	var req RegisterOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	items := make([]order.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		price, priceErr := kernel.NewMoney(it.UnitPrice)
		if priceErr != nil {
			return priceErr
		}
		items = append(items, order.LineItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price})
	}

	cmd, err := commands.NewRegisterOrderCommand(req.ID, req.CustomerID, req.ContactPhone, items, status, req.Reason, req.ProcessedBy)
	if err != nil {
		return err
	}
	o, err := s.h.RegisterOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}. Customers only see their own orders.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	p := caller(c)
	if p.Role == principal.RoleCustomer && !view.CustomerID.IsEqual(p.ID) {
		return errs.NewObjectNotFoundError("order", orderID)
	}

	return c.JSON(http.StatusOK, orderFromView(view))
}

// OpenAttempt handles POST /api/v1/orders/{orderId}/attempts.
func (s *Server) OpenAttempt(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req OpenAttemptRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewOpenAttemptCommand(orderID, req.EstimatedDelivery)
	if err != nil {
		return err
	}
	a, err := s.h.OpenAttempt.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, attemptFromDomain(a))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// OrderHandler drives checkout and order views against the backend.
type OrderHandler struct {
	orders   ports.OrderService
	sessions ports.SessionService
}

func NewOrderHandler(orders ports.OrderService, sessions ports.SessionService) *OrderHandler {
	return &OrderHandler{orders: orders, sessions: sessions}
}

// Create places an order from the session's cart.
//
// @Summary      Place order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Checkout details"
// @Success      201   {object}  domain.Envelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	env, err := h.orders.Place(c.Request().Context(), sid, h.sessions.Authorizer(sid), domain.CheckoutDetails{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		ShippingAddress: domain.ShippingAddress{
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			State:      req.ShippingAddress.State,
			Country:    req.ShippingAddress.Country,
			Phone:      req.ShippingAddress.Phone,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, env)
}

// List returns the session user's orders.
//
// @Summary      My orders
// @Tags         orders
// @Produce      json
// @Success      200  {object}  domain.Envelope
// @Failure      401  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	env, err := h.orders.List(c.Request().Context(), h.sessions.Authorizer(sid), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Detail returns one order.
//
// @Summary      Order detail
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Envelope
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Detail(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	env, err := h.orders.Detail(c.Request().Context(), h.sessions.Authorizer(sid), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Track returns the public tracking view of an order. The id is validated
// locally before any network call.
//
// @Summary      Track order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Envelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/track/{id} [get]
func (h *OrderHandler) Track(c echo.Context) error {
	id := c.Param("id")
	if len(id) < 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "Order ID must be at least 5 characters")
	}

	env, err := h.orders.Track(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

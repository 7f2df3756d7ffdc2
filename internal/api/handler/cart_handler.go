package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// CartHandler owns the cart endpoints. Product details in the add payload are
// display data supplied by the storefront UI; the backend re-validates prices
// when the order is placed.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get returns the cart and its order summary.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	cart, _, err := h.cart.Get(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// AddItem adds a product (and variant selection) to the cart; an existing
// line with the same product and variants has its quantity incremented.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Line item"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := domain.LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Thumbnail: req.Thumbnail,
		UnitPrice: req.Price,
		Quantity:  req.Quantity,
		Variants:  toVariants(req.Variants),
		TaxMethod: domain.TaxMethod(strings.ToLower(req.TaxMethod)),
	}
	if req.Tax != nil {
		item.Tax = &domain.Tax{Type: domain.TaxType(req.Tax.Type), Rate: req.Tax.Rate}
	}

	cart, err := h.cart.Add(c.Request().Context(), sid, item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// ChangeQuantity sets the quantity of an existing line.
//
// @Summary      Change line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      changeQuantityRequest  true  "Line and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart/items [patch]
func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req changeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cart.ChangeQuantity(c.Request().Context(), sid, req.ProductID, toVariants(req.Variants), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// RemoveItem deletes a single line.
//
// @Summary      Remove line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      removeItemRequest  true  "Line identity"
// @Success      200   {object}  cartResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart/items [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req removeItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cart.Remove(c.Request().Context(), sid, req.ProductID, toVariants(req.Variants))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// Clear empties the cart.
//
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.cart.Clear(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ApplyCoupon attaches a coupon to the cart.
//
// @Summary      Apply coupon
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      couponRequest  true  "Coupon"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Router       /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cart.ApplyCoupon(c.Request().Context(), sid, domain.Coupon{
		Code:         req.Code,
		DiscountType: domain.DiscountType(req.DiscountType),
		Discount:     req.Discount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// RemoveCoupon detaches the coupon.
//
// @Summary      Remove coupon
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.RemoveCoupon(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

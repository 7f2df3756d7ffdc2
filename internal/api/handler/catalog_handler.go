package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/core/ports"
)

// CatalogHandler proxies the backend's public catalog. Responses are opaque
// envelopes; filters and pagination pass through untouched.
type CatalogHandler struct {
	catalog ports.CatalogGateway
}

func NewCatalogHandler(catalog ports.CatalogGateway) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CategoryTree returns the category hierarchy.
//
// @Summary      Category tree
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  domain.Envelope
// @Router       /catalog/categories/tree [get]
func (h *CatalogHandler) CategoryTree(c echo.Context) error {
	env, err := h.catalog.CategoryTree(c.Request().Context(), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// CategoryProducts returns products filtered by category.
//
// @Summary      Category products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  domain.Envelope
// @Router       /catalog/categories/products [get]
func (h *CatalogHandler) CategoryProducts(c echo.Context) error {
	env, err := h.catalog.CategoryProducts(c.Request().Context(), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Products returns the product listing.
//
// @Summary      Products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  domain.Envelope
// @Router       /catalog/products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	env, err := h.catalog.Products(c.Request().Context(), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Product returns one product by slug.
//
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  domain.Envelope
// @Failure      404   {object}  errorResponse
// @Router       /catalog/products/{slug} [get]
func (h *CatalogHandler) Product(c echo.Context) error {
	env, err := h.catalog.Product(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Combos returns the combo listing.
//
// @Summary      Combos
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  domain.Envelope
// @Router       /catalog/combos [get]
func (h *CatalogHandler) Combos(c echo.Context) error {
	env, err := h.catalog.Combos(c.Request().Context(), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

// Combo returns one combo by id.
//
// @Summary      Combo detail
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Combo id"
// @Success      200  {object}  domain.Envelope
// @Failure      404  {object}  errorResponse
// @Router       /catalog/combos/{id} [get]
func (h *CatalogHandler) Combo(c echo.Context) error {
	env, err := h.catalog.Combo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, env)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// PageHandler serves informational pages and the storefront settings.
type PageHandler struct {
	pages ports.PageService
}

func NewPageHandler(pages ports.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

// Page returns one informational page by slug.
//
// @Summary      Informational page
// @Tags         pages
// @Produce      json
// @Param        slug  path      string  true  "Page slug"
// @Success      200   {object}  domain.Page
// @Failure      404   {object}  errorResponse
// @Router       /pages/{slug} [get]
func (h *PageHandler) Page(c echo.Context) error {
	page, err := h.pages.Page(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Upsert creates or replaces a page. Admin only.
//
// @Summary      Upsert page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        slug  path      string             true  "Page slug"
// @Param        body  body      upsertPageRequest  true  "Page content"
// @Success      200   {object}  domain.Page
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /pages/{slug} [put]
func (h *PageHandler) Upsert(c echo.Context) error {
	var req upsertPageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page := &domain.Page{
		Slug:  c.Param("slug"),
		Title: req.Title,
		Body:  req.Body,
	}
	if err := h.pages.UpsertPage(c.Request().Context(), page); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Settings returns the storefront settings singleton.
//
// @Summary      Storefront settings
// @Tags         pages
// @Produce      json
// @Success      200  {object}  domain.Storefront
// @Failure      404  {object}  errorResponse
// @Router       /storefront [get]
func (h *PageHandler) Settings(c echo.Context) error {
	sf, err := h.pages.Settings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sf)
}

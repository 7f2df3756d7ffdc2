package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// Catalog endpoints are public pass-throughs: query parameters (filters,
// pagination) travel untouched and the opaque envelope comes straight back.

func (c *Client) CategoryTree(ctx context.Context, query url.Values) (*domain.Envelope, error) {
	return c.doPublic(ctx, "category_tree", http.MethodGet, "/category/tree", query, nil)
}

func (c *Client) CategoryProducts(ctx context.Context, query url.Values) (*domain.Envelope, error) {
	return c.doPublic(ctx, "category_products", http.MethodGet, "/category/products", query, nil)
}

func (c *Client) Products(ctx context.Context, query url.Values) (*domain.Envelope, error) {
	return c.doPublic(ctx, "product_list", http.MethodGet, "/product/all", query, nil)
}

func (c *Client) Product(ctx context.Context, slug string) (*domain.Envelope, error) {
	return c.doPublic(ctx, "product_detail", http.MethodGet, "/product/"+url.PathEscape(slug), nil, nil)
}

func (c *Client) Combos(ctx context.Context, query url.Values) (*domain.Envelope, error) {
	return c.doPublic(ctx, "combo_list", http.MethodGet, "/combo/all", query, nil)
}

func (c *Client) Combo(ctx context.Context, id string) (*domain.Envelope, error) {
	return c.doPublic(ctx, "combo_detail", http.MethodGet, "/combo/"+url.PathEscape(id), nil, nil)
}

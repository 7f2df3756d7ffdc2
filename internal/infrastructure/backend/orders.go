package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

func (c *Client) Create(ctx context.Context, auth ports.Authorizer, sub *domain.OrderSubmission) (*domain.Envelope, error) {
	return c.doAuthorized(ctx, auth, "order_create", http.MethodPost, "/order/create", nil, sub)
}

func (c *Client) MyOrders(ctx context.Context, auth ports.Authorizer, query url.Values) (*domain.Envelope, error) {
	return c.doAuthorized(ctx, auth, "order_list", http.MethodGet, "/order/my-orders", query, nil)
}

func (c *Client) Order(ctx context.Context, auth ports.Authorizer, id string) (*domain.Envelope, error) {
	return c.doAuthorized(ctx, auth, "order_detail", http.MethodGet, "/order/"+url.PathEscape(id), nil, nil)
}

// Track is public: anyone with an order id can view its tracking state.
func (c *Client) Track(ctx context.Context, id string) (*domain.Envelope, error) {
	return c.doPublic(ctx, "order_track", http.MethodGet, "/order/track/"+url.PathEscape(id), nil, nil)
}

package ports

import (
	"context"
	"net/url"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// OrderGateway proxies the backend's order endpoints. All calls except Track
// require an authorized session.
type OrderGateway interface {
	Create(ctx context.Context, auth Authorizer, sub *domain.OrderSubmission) (*domain.Envelope, error)
	MyOrders(ctx context.Context, auth Authorizer, query url.Values) (*domain.Envelope, error)
	Order(ctx context.Context, auth Authorizer, id string) (*domain.Envelope, error)
	Track(ctx context.Context, id string) (*domain.Envelope, error)
}

// OrderService drives the checkout flow and order views.
type OrderService interface {
	// Place submits the session's cart with the checkout details. On
	// backend success the cart and its coupon are cleared.
	Place(ctx context.Context, sid string, auth Authorizer, details domain.CheckoutDetails) (*domain.Envelope, error)
	List(ctx context.Context, auth Authorizer, query url.Values) (*domain.Envelope, error)
	Detail(ctx context.Context, auth Authorizer, id string) (*domain.Envelope, error)
	Track(ctx context.Context, id string) (*domain.Envelope, error)
}

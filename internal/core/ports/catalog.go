package ports

import (
	"context"
	"net/url"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// CatalogGateway proxies the backend's public catalog endpoints. Payloads
// are opaque envelopes; query parameters (filters, pagination) pass through
// untouched.
type CatalogGateway interface {
	CategoryTree(ctx context.Context, query url.Values) (*domain.Envelope, error)
	CategoryProducts(ctx context.Context, query url.Values) (*domain.Envelope, error)
	Products(ctx context.Context, query url.Values) (*domain.Envelope, error)
	Product(ctx context.Context, slug string) (*domain.Envelope, error)
	Combos(ctx context.Context, query url.Values) (*domain.Envelope, error)
	Combo(ctx context.Context, id string) (*domain.Envelope, error)
}

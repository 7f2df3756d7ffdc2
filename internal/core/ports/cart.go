package ports

import (
	"context"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// CartRepository persists one cart per session id.
type CartRepository interface {
	Get(ctx context.Context, sid string) (*domain.Cart, error)
	Save(ctx context.Context, sid string, cart *domain.Cart) error
	Delete(ctx context.Context, sid string) error
}

// CartService implements the cart operations. All mutations return the
// resulting cart so handlers can render it without a second read.
type CartService interface {
	Get(ctx context.Context, sid string) (*domain.Cart, domain.Summary, error)
	Add(ctx context.Context, sid string, item domain.LineItem) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, sid, productID string, variants []domain.VariantSelection, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, sid, productID string, variants []domain.VariantSelection) (*domain.Cart, error)
	Clear(ctx context.Context, sid string) error
	ApplyCoupon(ctx context.Context, sid string, coupon domain.Coupon) (*domain.Cart, error)
	RemoveCoupon(ctx context.Context, sid string) (*domain.Cart, error)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadline/storefront-api/internal/api/metrics"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// CartService implements the cart operations over a per-session repository.
type CartService struct {
	repo ports.CartRepository
	log  zerolog.Logger
}

func NewCartService(repo ports.CartRepository, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

func (s *CartService) Get(ctx context.Context, sid string) (*domain.Cart, domain.Summary, error) {
	cart, err := s.repo.Get(ctx, sid)
	if err != nil {
		return nil, domain.Summary{}, err
	}
	return cart, domain.Summarize(cart.Items, cart.Coupon), nil
}

// Add merges the item into the session's cart. The same product id with the
// same variant selection increments the existing line instead of duplicating.
func (s *CartService) Add(ctx context.Context, sid string, item domain.LineItem) (*domain.Cart, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.TaxMethod = normalizeTaxMethod(item.TaxMethod)

	cart, err := s.repo.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	op := "add"
	if cart.Find(item.Key()) >= 0 {
		op = "merge"
	}
	cart.Add(item)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	metrics.CartOperationsTotal.WithLabelValues(op).Inc()
	return cart, nil
}

func (s *CartService) ChangeQuantity(ctx context.Context, sid, productID string, variants []domain.VariantSelection, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.repo.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	key := lineKey(productID, variants)
	i := cart.Find(key)
	if i < 0 {
		return nil, domain.ErrLineNotFound
	}
	cart.Items[i].Quantity = quantity
	cart.Items[i].LineTotal = cart.Items[i].UnitPrice * float64(quantity)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	metrics.CartOperationsTotal.WithLabelValues("change_quantity").Inc()
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, sid, productID string, variants []domain.VariantSelection) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	key := lineKey(productID, variants)
	i := cart.Find(key)
	if i < 0 {
		return nil, domain.ErrLineNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, sid string) error {
	if err := s.repo.Delete(ctx, sid); err != nil {
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	return nil
}

func (s *CartService) ApplyCoupon(ctx context.Context, sid string, coupon domain.Coupon) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	cart.Coupon = &coupon
	cart.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	metrics.CartOperationsTotal.WithLabelValues("apply_coupon").Inc()
	return cart, nil
}

func (s *CartService) RemoveCoupon(ctx context.Context, sid string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	cart.Coupon = nil
	cart.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	metrics.CartOperationsTotal.WithLabelValues("remove_coupon").Inc()
	return cart, nil
}

func lineKey(productID string, variants []domain.VariantSelection) string {
	return domain.LineItem{ProductID: productID, Variants: variants}.Key()
}

func normalizeTaxMethod(m domain.TaxMethod) domain.TaxMethod {
	switch domain.TaxMethod(strings.ToLower(string(m))) {
	case domain.TaxInclusive:
		return domain.TaxInclusive
	case domain.TaxExclusive:
		return domain.TaxExclusive
	default:
		return domain.TaxNone
	}
}

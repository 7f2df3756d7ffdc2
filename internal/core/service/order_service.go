package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/threadline/storefront-api/internal/api/metrics"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// OrderService drives checkout against the backend's order endpoints. The
// backend re-validates the client-computed summary and owns the authoritative
// order record.
type OrderService struct {
	orders ports.OrderGateway
	cart   ports.CartRepository
	log    zerolog.Logger
}

func NewOrderService(orders ports.OrderGateway, cart ports.CartRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, cart: cart, log: log}
}

// Place submits the session's cart. On backend success the cart lines and
// coupon are destroyed en masse; on failure the cart is left intact so the
// user can retry.
func (s *OrderService) Place(ctx context.Context, sid string, auth ports.Authorizer, details domain.CheckoutDetails) (*domain.Envelope, error) {
	cart, err := s.cart.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	summary := domain.Summarize(cart.Items, cart.Coupon)
	sub := &domain.OrderSubmission{
		OrderItems:      cart.Items,
		OrderTotal:      summary.Total,
		SubTotal:        summary.SubTotal,
		Discount:        summary.Discount,
		TotalBeforeTax:  summary.TotalBeforeTax,
		Tax:             summary.Tax,
		Total:           summary.Total,
		Name:            details.Name,
		Email:           details.Email,
		Phone:           details.Phone,
		ShippingAddress: details.ShippingAddress,
		PaymentMethod:   domain.PaymentMethodCOD,
		HasCoupon:       cart.Coupon != nil,
	}
	if cart.Coupon != nil {
		sub.CouponCode = cart.Coupon.Code
	}

	env, err := s.orders.Create(ctx, auth, sub)
	if err != nil {
		metrics.OrdersSubmittedTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	if err := s.cart.Delete(ctx, sid); err != nil {
		// The order exists upstream; a lingering cart is the lesser harm.
		s.log.Error().Err(err).Msg("failed to clear cart after order placement")
	}

	metrics.OrdersSubmittedTotal.WithLabelValues("success").Inc()
	s.log.Info().Int("lines", len(sub.OrderItems)).Float64("total", sub.OrderTotal).Msg("order placed")
	return env, nil
}

func (s *OrderService) List(ctx context.Context, auth ports.Authorizer, query url.Values) (*domain.Envelope, error) {
	return s.orders.MyOrders(ctx, auth, query)
}

func (s *OrderService) Detail(ctx context.Context, auth ports.Authorizer, id string) (*domain.Envelope, error) {
	return s.orders.Order(ctx, auth, id)
}

func (s *OrderService) Track(ctx context.Context, id string) (*domain.Envelope, error) {
	return s.orders.Track(ctx, id)
}

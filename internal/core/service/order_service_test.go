package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

type stubAuthorizer struct{}

func (stubAuthorizer) Token(context.Context) (string, error) { return "access-token", nil }
func (stubAuthorizer) Invalidate(context.Context) error      { return nil }

type stubOrderGateway struct {
	createErr error
	lastSub   *domain.OrderSubmission
}

func (g *stubOrderGateway) Create(_ context.Context, _ ports.Authorizer, sub *domain.OrderSubmission) (*domain.Envelope, error) {
	g.lastSub = sub
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &domain.Envelope{Success: true, Message: "Order placed"}, nil
}

func (g *stubOrderGateway) MyOrders(context.Context, ports.Authorizer, url.Values) (*domain.Envelope, error) {
	return &domain.Envelope{Success: true}, nil
}

func (g *stubOrderGateway) Order(context.Context, ports.Authorizer, string) (*domain.Envelope, error) {
	return &domain.Envelope{Success: true}, nil
}

func (g *stubOrderGateway) Track(context.Context, string) (*domain.Envelope, error) {
	return &domain.Envelope{Success: true}, nil
}

func seedCart(t *testing.T, repo *stubCartRepo, sid string, cart *domain.Cart) {
	t.Helper()
	if err := repo.Save(context.Background(), sid, cart); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}
}

func TestOrderService_Place_Success(t *testing.T) {
	repo := newStubCartRepo()
	gateway := &stubOrderGateway{}
	svc := NewOrderService(gateway, repo, zerolog.Nop())

	seedCart(t, repo, "s1", &domain.Cart{
		Items: []domain.LineItem{{ProductID: "p1", UnitPrice: 100, Quantity: 2, LineTotal: 200}},
		Coupon: &domain.Coupon{
			Code: "TEN", DiscountType: domain.DiscountPercentage, Discount: 10,
		},
	})

	env, err := svc.Place(context.Background(), "s1", stubAuthorizer{}, domain.CheckoutDetails{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Phone: "5551234",
	})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope")
	}

	sub := gateway.lastSub
	if sub == nil {
		t.Fatalf("expected a submission")
	}
	if sub.PaymentMethod != domain.PaymentMethodCOD {
		t.Fatalf("unexpected payment method %q", sub.PaymentMethod)
	}
	if sub.SubTotal != 200 || sub.Discount != 20 || sub.Total != 180 || sub.OrderTotal != 180 {
		t.Fatalf("unexpected figures: %+v", sub)
	}
	if !sub.HasCoupon || sub.CouponCode != "TEN" {
		t.Fatalf("coupon not carried into submission: %+v", sub)
	}

	// Cart is destroyed once the backend accepts the order.
	stored, _ := repo.Get(context.Background(), "s1")
	if len(stored.Items) != 0 || stored.Coupon != nil {
		t.Fatalf("cart must be cleared after placement, got %+v", stored)
	}
}

func TestOrderService_Place_EmptyCart(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewOrderService(&stubOrderGateway{}, repo, zerolog.Nop())

	if _, err := svc.Place(context.Background(), "s1", stubAuthorizer{}, domain.CheckoutDetails{}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderService_Place_BackendFailureKeepsCart(t *testing.T) {
	repo := newStubCartRepo()
	gateway := &stubOrderGateway{createErr: errors.New("backend down")}
	svc := NewOrderService(gateway, repo, zerolog.Nop())

	seedCart(t, repo, "s1", &domain.Cart{
		Items: []domain.LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1, LineTotal: 10}},
	})

	if _, err := svc.Place(context.Background(), "s1", stubAuthorizer{}, domain.CheckoutDetails{}); err == nil {
		t.Fatalf("expected error from backend failure")
	}

	stored, _ := repo.Get(context.Background(), "s1")
	if len(stored.Items) != 1 {
		t.Fatalf("cart must survive a failed placement, got %+v", stored.Items)
	}
}

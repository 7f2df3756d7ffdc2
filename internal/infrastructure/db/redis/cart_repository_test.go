package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/threadline/storefront-api/internal/core/domain"
)

func newTestCartRepo(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartRepository(client, time.Hour), mr
}

func TestCartRepository_MissingIsEmptyCart(t *testing.T) {
	repo, _ := newTestCartRepo(t)

	cart, err := repo.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(cart.Items) != 0 || cart.Coupon != nil {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestCartRepository_RoundTrip(t *testing.T) {
	repo, _ := newTestCartRepo(t)
	ctx := context.Background()

	want := &domain.Cart{
		Items: []domain.LineItem{{
			ProductID: "p1",
			Name:      "Shirt",
			UnitPrice: 25,
			Quantity:  2,
			LineTotal: 50,
			Variants:  []domain.VariantSelection{{Name: "Size", Value: "M"}},
			TaxMethod: domain.TaxExclusive,
			Tax:       &domain.Tax{Type: domain.TaxPercentage, Rate: 10},
		}},
		Coupon:    &domain.Coupon{Code: "TEN", DiscountType: domain.DiscountPercentage, Discount: 10},
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Save(ctx, "s1", want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(got.Items))
	}
	line := got.Items[0]
	if line.Key() != "p1|Size=M" {
		t.Fatalf("line identity lost: %q", line.Key())
	}
	if line.Tax == nil || line.Tax.Rate != 10 {
		t.Fatalf("tax descriptor lost: %+v", line.Tax)
	}
	if got.Coupon == nil || got.Coupon.Code != "TEN" {
		t.Fatalf("coupon lost: %+v", got.Coupon)
	}
}

func TestCartRepository_SaveRefreshesTTL(t *testing.T) {
	repo, mr := newTestCartRepo(t)
	ctx := context.Background()

	cart := &domain.Cart{Items: []domain.LineItem{{ProductID: "p1", Quantity: 1}}}
	if err := repo.Save(ctx, "s1", cart); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(30 * time.Minute)
	if err := repo.Save(ctx, "s1", cart); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if ttl := mr.TTL("cart:s1"); ttl < 59*time.Minute {
		t.Fatalf("save must refresh the TTL, got %v", ttl)
	}
}

func TestCartRepository_Delete(t *testing.T) {
	repo, _ := newTestCartRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "s1", &domain.Cart{Items: []domain.LineItem{{ProductID: "p1", Quantity: 1}}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	cart, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after delete")
	}
}

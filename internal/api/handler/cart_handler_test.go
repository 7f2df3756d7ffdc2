package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/threadline/storefront-api/internal/core/domain"
)

type stubCart struct {
	cart     *domain.Cart
	lastItem *domain.LineItem
	cleared  bool
}

func (s *stubCart) Get(context.Context, string) (*domain.Cart, domain.Summary, error) {
	return s.cart, domain.Summarize(s.cart.Items, s.cart.Coupon), nil
}

func (s *stubCart) Add(_ context.Context, _ string, item domain.LineItem) (*domain.Cart, error) {
	s.lastItem = &item
	s.cart.Add(item)
	return s.cart, nil
}

func (s *stubCart) ChangeQuantity(_ context.Context, _ string, productID string, variants []domain.VariantSelection, quantity int) (*domain.Cart, error) {
	key := domain.LineItem{ProductID: productID, Variants: variants}.Key()
	i := s.cart.Find(key)
	if i < 0 {
		return nil, domain.ErrLineNotFound
	}
	s.cart.Items[i].Quantity = quantity
	return s.cart, nil
}

func (s *stubCart) Remove(_ context.Context, _ string, productID string, variants []domain.VariantSelection) (*domain.Cart, error) {
	key := domain.LineItem{ProductID: productID, Variants: variants}.Key()
	i := s.cart.Find(key)
	if i < 0 {
		return nil, domain.ErrLineNotFound
	}
	s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	return s.cart, nil
}

func (s *stubCart) Clear(context.Context, string) error {
	s.cleared = true
	s.cart.Items = nil
	return nil
}

func (s *stubCart) ApplyCoupon(_ context.Context, _ string, coupon domain.Coupon) (*domain.Cart, error) {
	if len(s.cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	s.cart.Coupon = &coupon
	return s.cart, nil
}

func (s *stubCart) RemoveCoupon(context.Context, string) (*domain.Cart, error) {
	s.cart.Coupon = nil
	return s.cart, nil
}

func TestCartHandler_Get(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{Items: []domain.LineItem{
		{ProductID: "p1", UnitPrice: 10, Quantity: 2, LineTotal: 20},
	}}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodGet, "/cart", "")
	withSession(c, "s1", testSessionCredential())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	var resp struct {
		Units   int `json:"units"`
		Summary struct {
			SubTotal float64 `json:"subTotal"`
			Total    float64 `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Units != 2 || resp.Summary.SubTotal != 20 || resp.Summary.Total != 20 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCartHandler_Get_RequiresSession(t *testing.T) {
	h := NewCartHandler(&stubCart{cart: &domain.Cart{}})

	e := newEcho()
	c, _ := jsonContext(e, http.MethodGet, "/cart", "")

	if err := h.Get(c); err == nil {
		t.Fatalf("expected error without session context")
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPost, "/cart/items", `{
		"productId": "p1",
		"name": "Shirt",
		"price": 25,
		"quantity": 2,
		"variants": [{"name": "Size", "value": "M"}],
		"taxMethod": "Exclusive",
		"productTax": {"type": "percentage", "rate": 10}
	}`)
	withSession(c, "s1", testSessionCredential())

	if err := h.AddItem(c); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	item := stub.lastItem
	if item == nil {
		t.Fatalf("item not forwarded to service")
	}
	if item.Key() != "p1|Size=M" {
		t.Fatalf("unexpected key %q", item.Key())
	}
	if item.TaxMethod != domain.TaxExclusive {
		t.Fatalf("tax method must be lower-cased, got %q", item.TaxMethod)
	}
	if item.Tax == nil || item.Tax.Type != domain.TaxPercentage || item.Tax.Rate != 10 {
		t.Fatalf("tax descriptor lost: %+v", item.Tax)
	}
}

func TestCartHandler_AddItem_Validation(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, _ := jsonContext(e, http.MethodPost, "/cart/items", `{"name": "No product id", "quantity": 1}`)
	withSession(c, "s1", testSessionCredential())

	if err := h.AddItem(c); err == nil {
		t.Fatalf("expected validation error")
	}
	if stub.lastItem != nil {
		t.Fatalf("invalid payload must not reach the service")
	}
}

func TestCartHandler_ChangeQuantity_LineNotFound(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, _ := jsonContext(e, http.MethodPatch, "/cart/items", `{"productId": "ghost", "quantity": 2}`)
	withSession(c, "s1", testSessionCredential())

	if err := h.ChangeQuantity(c); err != domain.ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{Items: []domain.LineItem{
		{ProductID: "p1", Quantity: 1, Variants: []domain.VariantSelection{{Name: "Size", Value: "M"}}},
	}}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodDelete, "/cart/items",
		`{"productId": "p1", "variants": [{"name": "Size", "value": "M"}]}`)
	withSession(c, "s1", testSessionCredential())

	if err := h.RemoveItem(c); err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.cart.Items) != 0 {
		t.Fatalf("line not removed")
	}
}

func TestCartHandler_Coupon(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{Items: []domain.LineItem{
		{ProductID: "p1", UnitPrice: 100, Quantity: 1, LineTotal: 100},
	}}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPost, "/cart/coupon",
		`{"code": "TEN", "discountType": "percentage", "discount": 10}`)
	withSession(c, "s1", testSessionCredential())

	if err := h.ApplyCoupon(c); err != nil {
		t.Fatalf("ApplyCoupon returned error: %v", err)
	}

	var resp struct {
		Summary struct {
			Discount float64 `json:"discount"`
			Total    float64 `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Summary.Discount != 10 || resp.Summary.Total != 90 {
		t.Fatalf("unexpected summary %+v", resp.Summary)
	}
}

func TestCartHandler_Clear(t *testing.T) {
	stub := &stubCart{cart: &domain.Cart{Items: []domain.LineItem{{ProductID: "p1", Quantity: 1}}}}
	h := NewCartHandler(stub)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodDelete, "/cart", "")
	withSession(c, "s1", testSessionCredential())

	if err := h.Clear(c); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if rec.Code != http.StatusOK || !stub.cleared {
		t.Fatalf("cart not cleared (code %d)", rec.Code)
	}
}

package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

type stubOrders struct {
	placed      *domain.CheckoutDetails
	placeErr    error
	trackedID   string
	trackCalled bool
}

func (s *stubOrders) Place(_ context.Context, _ string, _ ports.Authorizer, details domain.CheckoutDetails) (*domain.Envelope, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	s.placed = &details
	return &domain.Envelope{Success: true, Message: "Order placed"}, nil
}

func (s *stubOrders) List(context.Context, ports.Authorizer, url.Values) (*domain.Envelope, error) {
	return &domain.Envelope{Success: true}, nil
}

func (s *stubOrders) Detail(context.Context, ports.Authorizer, string) (*domain.Envelope, error) {
	return &domain.Envelope{Success: true}, nil
}

func (s *stubOrders) Track(_ context.Context, id string) (*domain.Envelope, error) {
	s.trackCalled = true
	s.trackedID = id
	return &domain.Envelope{Success: true}, nil
}

const checkoutPayload = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": "5551234",
	"shippingAddress": {
		"line1": "1 Analytical Way",
		"city": "London",
		"postalCode": "N1",
		"country": "UK",
		"phone": "5551234"
	}
}`

func TestOrderHandler_Create(t *testing.T) {
	orders := &stubOrders{}
	sessions := &stubSessions{cred: testSessionCredential()}
	h := NewOrderHandler(orders, sessions)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPost, "/orders", checkoutPayload)
	withSession(c, "s1", sessions.cred)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if orders.placed == nil || orders.placed.ShippingAddress.City != "London" {
		t.Fatalf("checkout details not forwarded: %+v", orders.placed)
	}
}

func TestOrderHandler_Create_Validation(t *testing.T) {
	orders := &stubOrders{}
	sessions := &stubSessions{cred: testSessionCredential()}
	h := NewOrderHandler(orders, sessions)

	e := newEcho()
	c, _ := jsonContext(e, http.MethodPost, "/orders", `{"name": "Ada"}`)
	withSession(c, "s1", sessions.cred)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if orders.placed != nil {
		t.Fatalf("invalid payload must not reach the service")
	}
}

func TestOrderHandler_Create_EmptyCart(t *testing.T) {
	orders := &stubOrders{placeErr: domain.ErrEmptyCart}
	sessions := &stubSessions{cred: testSessionCredential()}
	h := NewOrderHandler(orders, sessions)

	e := newEcho()
	c, _ := jsonContext(e, http.MethodPost, "/orders", checkoutPayload)
	withSession(c, "s1", sessions.cred)

	if err := h.Create(c); err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderHandler_Track(t *testing.T) {
	orders := &stubOrders{}
	h := NewOrderHandler(orders, &stubSessions{})

	e := newEcho()
	c, rec := jsonContext(e, http.MethodGet, "/orders/track/abc123", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Track(c); err != nil {
		t.Fatalf("Track returned error: %v", err)
	}
	if rec.Code != http.StatusOK || orders.trackedID != "abc123" {
		t.Fatalf("track not forwarded (code %d, id %q)", rec.Code, orders.trackedID)
	}
}

func TestOrderHandler_Track_ShortID(t *testing.T) {
	orders := &stubOrders{}
	h := NewOrderHandler(orders, &stubSessions{})

	e := newEcho()
	c, _ := jsonContext(e, http.MethodGet, "/orders/track/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Track(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if orders.trackCalled {
		t.Fatalf("short id must be rejected before any network call")
	}
}

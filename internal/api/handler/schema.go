package handler

import (
	"time"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// errorResponse documents the standard error envelope for swagger.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name        string `json:"name"        validate:"required"`
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	IsVerified  bool   `json:"isVerified"`
}

type sessionResponse struct {
	User    *domain.Credential `json:"user"`
	Expires string             `json:"expires,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func newSessionResponse(cred *domain.Credential) sessionResponse {
	resp := sessionResponse{User: cred, Error: cred.Error}
	if !cred.AccessTokenExpires.IsZero() {
		resp.Expires = cred.AccessTokenExpires.UTC().Format(time.RFC3339)
	}
	return resp
}

// --- Cart ---

type variantRequest struct {
	Name  string `json:"name"  validate:"required"`
	Value string `json:"value" validate:"required"`
}

type taxRequest struct {
	Type string  `json:"type" validate:"required,oneof=percentage fixed"`
	Rate float64 `json:"rate" validate:"gte=0"`
}

type addItemRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Name      string           `json:"name"      validate:"required"`
	Thumbnail string           `json:"thumbnail"`
	Price     float64          `json:"price"     validate:"gte=0"`
	Quantity  int              `json:"quantity"  validate:"gte=1"`
	Variants  []variantRequest `json:"variants"  validate:"dive"`
	TaxMethod string           `json:"taxMethod"`
	Tax       *taxRequest      `json:"productTax"`
}

type changeQuantityRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Variants  []variantRequest `json:"variants"  validate:"dive"`
	Quantity  int              `json:"quantity"  validate:"gte=1"`
}

type removeItemRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Variants  []variantRequest `json:"variants"  validate:"dive"`
}

type couponRequest struct {
	Code         string  `json:"code"         validate:"required"`
	DiscountType string  `json:"discountType" validate:"required,oneof=percentage fixed"`
	Discount     float64 `json:"discount"     validate:"gte=0"`
}

type cartResponse struct {
	Items   []domain.LineItem `json:"items"`
	Coupon  *domain.Coupon    `json:"coupon,omitempty"`
	Units   int               `json:"units"`
	Summary domain.Summary    `json:"summary"`
}

func newCartResponse(cart *domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:   items,
		Coupon:  cart.Coupon,
		Units:   cart.Units(),
		Summary: domain.Summarize(cart.Items, cart.Coupon),
	}
}

// --- Checkout ---

type shippingAddressRequest struct {
	Line1      string `json:"line1"      validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	State      string `json:"state"`
	Country    string `json:"country"    validate:"required"`
	Phone      string `json:"phone"      validate:"required"`
}

type checkoutRequest struct {
	Name            string                 `json:"name"            validate:"required"`
	Email           string                 `json:"email"           validate:"required,email"`
	Phone           string                 `json:"phone"           validate:"required"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" validate:"required"`
}

// --- Pages ---

type upsertPageRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"  validate:"required"`
}

func toVariants(in []variantRequest) []domain.VariantSelection {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.VariantSelection, len(in))
	for i, v := range in {
		out[i] = domain.VariantSelection{Name: v.Name, Value: v.Value}
	}
	return out
}

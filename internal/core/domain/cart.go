package domain

import (
	"strings"
	"time"
)

// TaxMethod selects how a line's tax participates in the total.
type TaxMethod string

const (
	TaxInclusive TaxMethod = "inclusive"
	TaxExclusive TaxMethod = "exclusive"
	TaxNone      TaxMethod = "none"
)

// TaxType is the shape of a tax descriptor's rate.
type TaxType string

const (
	TaxPercentage TaxType = "percentage"
	TaxFixed      TaxType = "fixed"
)

// Tax describes the tax attached to a product.
type Tax struct {
	Type TaxType `json:"type"`
	Rate float64 `json:"rate"`
}

// VariantSelection is one chosen variant dimension, e.g. {Size, XL}.
// Order matters: two lines with the same pairs in a different order are
// distinct lines.
type VariantSelection struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LineItem is one product (plus variant selection) the user intends to buy.
type LineItem struct {
	ProductID string             `json:"productId"`
	Name      string             `json:"name"`
	Thumbnail string             `json:"thumbnail"`
	UnitPrice float64            `json:"price"`
	Quantity  int                `json:"quantity"`
	LineTotal float64            `json:"totalPrice"`
	Variants  []VariantSelection `json:"variants"`
	TaxMethod TaxMethod          `json:"taxMethod"`
	Tax       *Tax               `json:"productTax,omitempty"`
}

// Key identifies a line: product id plus the ordered variant selection.
// Adding the same key again merges into the existing line.
func (li LineItem) Key() string {
	var b strings.Builder
	b.WriteString(li.ProductID)
	for _, v := range li.Variants {
		b.WriteByte('|')
		b.WriteString(v.Name)
		b.WriteByte('=')
		b.WriteString(v.Value)
	}
	return b.String()
}

// Cart holds the session's line items and the applied coupon, if any.
type Cart struct {
	Items     []LineItem `json:"items"`
	Coupon    *Coupon    `json:"coupon,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Find returns the index of the line with the given key, or -1.
func (c *Cart) Find(key string) int {
	for i, li := range c.Items {
		if li.Key() == key {
			return i
		}
	}
	return -1
}

// Add merges the item into the cart: an existing line with the same key has
// its quantity incremented, otherwise the item is appended.
func (c *Cart) Add(item LineItem) {
	if i := c.Find(item.Key()); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		c.Items[i].LineTotal = c.Items[i].UnitPrice * float64(c.Items[i].Quantity)
		return
	}
	item.LineTotal = item.UnitPrice * float64(item.Quantity)
	c.Items = append(c.Items, item)
}

// Units is the total number of units across all lines.
func (c *Cart) Units() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

// DiscountType distinguishes percentage coupons from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a discount applied to the whole cart before tax.
type Coupon struct {
	Code         string       `json:"code"`
	DiscountType DiscountType `json:"discountType"`
	Discount     float64      `json:"discount"`
}

// Summary is the derived order summary. It is computed from the cart and
// coupon for display and submitted with the order; the backend re-validates
// and persists the authoritative figures.
type Summary struct {
	SubTotal       float64 `json:"subTotal"`
	Discount       float64 `json:"discount"`
	TotalBeforeTax float64 `json:"totalBeforeTax"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
}

// Summarize reduces the cart lines and coupon to an order summary.
//
// Exclusive tax scales with quantity; inclusive tax is extracted once per
// line. Lines with TaxNone or no tax descriptor contribute nothing.
func Summarize(items []LineItem, coupon *Coupon) Summary {
	var subTotal float64
	for _, li := range items {
		subTotal += li.UnitPrice * float64(li.Quantity)
	}

	var discount float64
	if coupon != nil {
		if coupon.DiscountType == DiscountPercentage {
			discount = subTotal * coupon.Discount / 100
		} else {
			discount = coupon.Discount
		}
	}

	var tax float64
	for _, li := range items {
		if li.Tax == nil {
			continue
		}
		switch li.TaxMethod {
		case TaxExclusive:
			switch li.Tax.Type {
			case TaxPercentage:
				tax += li.UnitPrice * li.Tax.Rate * float64(li.Quantity) / 100
			case TaxFixed:
				tax += li.Tax.Rate * float64(li.Quantity)
			}
		case TaxInclusive:
			switch li.Tax.Type {
			case TaxPercentage:
				tax += li.UnitPrice * li.Tax.Rate / (100 + li.Tax.Rate)
			case TaxFixed:
				tax += li.Tax.Rate
			}
		}
	}

	return Summary{
		SubTotal:       subTotal,
		Discount:       discount,
		TotalBeforeTax: subTotal - discount,
		Tax:            tax,
		Total:          subTotal - discount + tax,
	}
}

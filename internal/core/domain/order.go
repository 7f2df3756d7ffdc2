package domain

// OrderStatus is the lifecycle state reported by the backend for an order.
// The storefront never transitions orders itself; it only renders the state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
)

// PaymentMethodCOD is the only payment method the storefront submits.
const PaymentMethodCOD = "Cash On Delivery"

// ShippingAddress is the delivery destination collected at checkout.
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// CheckoutDetails is the buyer information submitted with an order.
type CheckoutDetails struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// OrderSubmission is the payload sent to the backend's order-create endpoint:
// the cart lines, the client-computed summary (re-validated server side), the
// checkout form and the coupon flags.
type OrderSubmission struct {
	OrderItems []LineItem `json:"orderItems"`
	OrderTotal float64    `json:"orderTotal"`

	SubTotal       float64 `json:"subTotal"`
	Discount       float64 `json:"discount"`
	TotalBeforeTax float64 `json:"totalBeforeTax"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`

	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`

	PaymentMethod string `json:"paymentMethod"`
	HasCoupon     bool   `json:"hasCoupon"`
	CouponCode    string `json:"couponCode,omitempty"`
}

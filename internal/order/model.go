package order

import (
	"time"

	"shopora-be/internal/product"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodCOD    PaymentMethod = "cod"
	MethodCard   PaymentMethod = "card"
	MethodPaypal PaymentMethod = "paypal"
	MethodOther  PaymentMethod = "other"
)

var validMethods = map[PaymentMethod]bool{
	MethodCOD:    true,
	MethodCard:   true,
	MethodPaypal: true,
	MethodOther:  true,
}

// ParsePaymentMethod falls back to cash-on-delivery for unknown labels.
// The method is a label only; no payment is processed.
func ParsePaymentMethod(s string) PaymentMethod {
	m := PaymentMethod(s)
	if !validMethods[m] {
		return MethodCOD
	}
	return m
}

type Order struct {
	ID            uint
	UserID        uint
	TotalAmount   float64
	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod

	CancellationReason      *string
	CancellationRequestedAt *time.Time
	CancellationApproved    bool
	CancellationRejected    bool
	DeliveredAt             *time.Time
	DeliveryConfirmedAt     *time.Time
	DeliveryNotes           *string

	ShippingStreet  string
	ShippingCity    string
	ShippingState   string
	ShippingZipCode string

	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItem
}

// ShippingAddress renders the four address fields as a single line.
func (o *Order) ShippingAddress() string {
	return o.ShippingStreet + ", " + o.ShippingCity + ", " + o.ShippingState + " " + o.ShippingZipCode
}

// OrderItem snapshots a product at order time. Price is a frozen copy,
// independent of later catalog changes.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     float64
	Product   *product.Product
}

func (i OrderItem) Total() float64 {
	return float64(i.Quantity) * i.Price
}

type CreateOrderParams struct {
	PaymentMethod   string
	ShippingStreet  string
	ShippingCity    string
	ShippingState   string
	ShippingZipCode string
	Items           []Line
}

package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentMethodCOD = "cod"

	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"

	// Initial order status. Later transitions are admin-supplied strings with
	// no enforced state machine.
	OrderStatusProcessing = "processing"
)

// Order is a placed order. Items are embedded snapshots of what was in the
// cart at checkout time; they do not reference the menu collection.
type Order struct {
	ID            uuid.UUID   `json:"id" bson:"_id"`
	CustomerEmail string      `json:"customerEmail" bson:"customerEmail"`
	CustomerName  string      `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Phone         string      `json:"phone,omitempty" bson:"phone,omitempty"`
	Address       string      `json:"address,omitempty" bson:"address,omitempty"`
	City          string      `json:"city,omitempty" bson:"city,omitempty"`
	Items         []OrderItem `json:"items" bson:"items"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	DeliveryFee   float64     `json:"deliveryFee" bson:"deliveryFee"`
	Total         float64     `json:"total" bson:"total"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	TransactionID string      `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	PaymentStatus string      `json:"paymentStatus" bson:"paymentStatus"`
	OrderStatus   string      `json:"orderStatus" bson:"orderStatus"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
}

// OrderItem is a snapshot of one cart line inside an order.
type OrderItem struct {
	FoodID   string  `json:"foodId,omitempty" bson:"foodId,omitempty"`
	Name     string  `json:"name,omitempty" bson:"name,omitempty"`
	Price    float64 `json:"price,omitempty" bson:"price,omitempty"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// CheckoutRequest is the payload of POST /checkout.
type CheckoutRequest struct {
	CustomerEmail string      `json:"customerEmail"`
	CustomerName  string      `json:"customerName"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"deliveryFee"`
	Total         float64     `json:"total"`
	TransactionID string      `json:"transactionId"`
}

// NewOrder builds the order document for a checkout request. Payment status is
// derived: cash on delivery starts unpaid, anything else is treated as paid.
func NewOrder(req *CheckoutRequest) *Order {
	paymentStatus := PaymentStatusPaid
	if req.PaymentMethod == PaymentMethodCOD {
		paymentStatus = PaymentStatusUnpaid
	}

	return &Order{
		ID:            uuid.New(),
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Items:         req.Items,
		Subtotal:      req.Subtotal,
		DeliveryFee:   req.DeliveryFee,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		PaymentStatus: paymentStatus,
		OrderStatus:   OrderStatusProcessing,
		CreatedAt:     time.Now(),
	}
}

// GetID returns the order ID
func (o *Order) GetID() uuid.UUID {
	return o.ID
}

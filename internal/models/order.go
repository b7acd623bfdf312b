package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentMethodGateway  = "mercadopago"
	PaymentMethodCOD      = "cod"
	PaymentMethodTransfer = "transfer"
)

// Order statuses.
const (
	OrderStatusPendingPayment  = "pending_payment"  // hosted checkout started, awaiting gateway
	OrderStatusAwaitingPayment = "awaiting_payment" // manual payment to be coordinated
	OrderStatusPaid            = "paid"
	OrderStatusRejected        = "rejected"
	OrderStatusCancelled       = "cancelled"
)

// OrderItem is a single line within an order, with the price
// frozen at the time the order was placed.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Title     string  `json:"title"`
	Size      string  `json:"size" gorm:"type:varchar(10)"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order is a customer order, durably persisted for both the hosted
// gateway path and the manual payment paths.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string      `json:"user_id" gorm:"index;type:varchar(36)"`
	CustomerName  string      `json:"customer_name"`
	Phone         string      `json:"phone"`
	District      string      `json:"district"`
	Address       string      `json:"address"`
	Email         string      `json:"email"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	Total         float64     `json:"total"`
	PreferenceID  string      `json:"preference_id,omitempty"` // hosted gateway preference, if any
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

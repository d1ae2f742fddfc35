package model

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusFailed         OrderStatus = "FAILED"
	OrderStatusPaymentFailed  OrderStatus = "PAYMENT_FAILED"
	OrderStatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// 注文確定の入力（cartIdはサーバー側カート）
type PlaceOrder struct {
	CartID        int64   `json:"cartId"`
	Reference     string  `json:"reference,omitempty"`
	Address       Address `json:"address"`
	PaymentMethod string  `json:"paymentMethod"`
}

type PlacedOrder struct {
	OrderID       string      `json:"orderId"`
	Status        OrderStatus `json:"orderStatus"`
	PaymentID     int64       `json:"paymentId,omitempty"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	ClientSecret  string      `json:"clientSecret,omitempty"`
}

package api

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// POST /orders
type placeOrderRequest struct {
	CartID         int64          `json:"cartId"`
	Reference      string         `json:"reference,omitempty"`
	Address        model.Address  `json:"address"`
	PaymentDetails paymentRequest `json:"paymentDetails"`
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type placeOrderResponse struct {
	OrderID        string            `json:"orderId"`
	OrderStatus    model.OrderStatus `json:"orderStatus"`
	PaymentDetails struct {
		PaymentID     int64  `json:"paymentId"`
		PaymentStatus string `json:"paymentStatus"`
		ClientSecret  string `json:"clientSecret"`
	} `json:"paymentDetails"`
}

type OrderGateway struct {
	client *Client
}

// DI
func NewOrderGateway(client *Client) repo.OrderGateway {
	return &OrderGateway{client: client}
}

func (g *OrderGateway) Place(ctx context.Context, in model.PlaceOrder) (model.PlacedOrder, error) {
	req := placeOrderRequest{
		CartID:         in.CartID,
		Reference:      in.Reference,
		Address:        in.Address,
		PaymentDetails: paymentRequest{PaymentMethod: in.PaymentMethod},
	}

	var out placeOrderResponse
	if err := g.client.Do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return model.PlacedOrder{}, err
	}

	return model.PlacedOrder{
		OrderID:       out.OrderID,
		Status:        out.OrderStatus,
		PaymentID:     out.PaymentDetails.PaymentID,
		PaymentStatus: out.PaymentDetails.PaymentStatus,
		ClientSecret:  out.PaymentDetails.ClientSecret,
	}, nil
}

package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// /orders への注文確定
type OrderGateway interface {
	Place(ctx context.Context, in model.PlaceOrder) (model.PlacedOrder, error)
}

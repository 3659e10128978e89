package iorderitem

import (
	"context"

	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
)

// PostgresRepository is an interface for the order item postgres repository.
type PostgresRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
}

package iorder

import (
	"context"

	"github.com/greenbasket/order-svc/internal/service/models/order"
)

// PostgresRepository is an interface for the order postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Update(ctx context.Context, o order.Order) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/greenbasket/order-svc/internal/dal/interfaces/iorder"
	"github.com/greenbasket/order-svc/internal/dal/interfaces/iorderitem"
	"github.com/greenbasket/order-svc/internal/dal/interfaces/ioutbox"
	"github.com/greenbasket/order-svc/internal/dal/postgres"
	orderrepo "github.com/greenbasket/order-svc/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/greenbasket/order-svc/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/greenbasket/order-svc/internal/dal/repositories/outbox/postgres"
)

// unitOfWork binds the repositories to one pgx transaction so the order row,
// its items, and the outbox event commit or roll back together.
type unitOfWork struct {
	client        *postgres.Client
	tx            pgx.Tx
	orderRepo     iorder.PostgresRepository
	orderItemRepo iorderitem.PostgresRepository
	outboxRepo    ioutbox.Repository
}

// NewUnitOfWork creates a unit of work over the pool. Until Begin is called the
// repositories run outside a transaction, which is enough for reads.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client:        client,
		orderRepo:     orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(client.Pool()),
		outboxRepo:    outboxrepo.NewPostgresOutboxRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorder.PostgresRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitem.PostgresRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutbox.Repository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}

package ordersvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/viper"

	"github.com/greenbasket/order-svc/internal/dal/interfaces/iorder"
	"github.com/greenbasket/order-svc/internal/dal/interfaces/iorderitem"
	"github.com/greenbasket/order-svc/internal/dal/interfaces/ioutbox"
	"github.com/greenbasket/order-svc/internal/dal/postgres"
	"github.com/greenbasket/order-svc/internal/dal/uow"
	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
	"github.com/greenbasket/order-svc/internal/service/models/outbox"
)

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorder.PostgresRepository
	OrderItemRepository() iorderitem.PostgresRepository
	OutboxRepository() ioutbox.Repository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: no unit of work source configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkSource overrides the unit of work constructor, mainly for tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkSource(newUOW func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = newUOW
	}
}

// List retrieves all orders newest first, each with its items embedded.
func (s *OrderService) List(ctx context.Context) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	if err := s.attachItems(ctx, work, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// Create inserts an order with its items in one transaction and returns the
// created order with generated ids and timestamp.
func (s *OrderService) Create(ctx context.Context, o order.Order) (order.Order, error) {
	o.Timestamp = time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	created, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.OrderID = created.ID
		items[i] = item
	}
	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}
	created.Items = items

	if err := enqueueEvent(ctx, work.OutboxRepository(), "order.created", created); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return created, nil
}

// Get retrieves one order with its items, or nil when no such id exists.
func (s *OrderService) Get(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, nil
	}

	if err := s.attachItems(ctx, work, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// Update overwrites the order scalar fields and wholesale-replaces its item set
// in one transaction. Returns rows affected by the order-row update only.
func (s *OrderService) Update(ctx context.Context, o order.Order) (int64, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	changes, err := work.OrderRepository().Update(ctx, o)
	if err != nil {
		return 0, err
	}

	if _, err := work.OrderItemRepository().DeleteByOrderID(ctx, o.ID); err != nil {
		return 0, err
	}

	items := make([]orderitem.OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.OrderID = o.ID
		items[i] = item
	}
	if _, err := work.OrderItemRepository().BulkInsert(ctx, items); err != nil {
		return 0, err
	}

	if err := enqueueEvent(ctx, work.OutboxRepository(), "order.updated", o); err != nil {
		return 0, err
	}

	if err := work.Commit(ctx); err != nil {
		return 0, err
	}

	return changes, nil
}

// Delete removes the order items first, then the order row, in one transaction.
// Returns rows affected by the order-row deletion.
func (s *OrderService) Delete(ctx context.Context, id int64) (int64, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	if _, err := work.OrderItemRepository().DeleteByOrderID(ctx, id); err != nil {
		return 0, err
	}

	changes, err := work.OrderRepository().Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := enqueueEvent(ctx, work.OutboxRepository(), "order.deleted", order.Order{ID: id}); err != nil {
		return 0, err
	}

	if err := work.Commit(ctx); err != nil {
		return 0, err
	}

	return changes, nil
}

// attachItems loads the items for the given orders and distributes them by order id.
func (s *OrderService) attachItems(ctx context.Context, work unitOfWork, orders []order.Order) error {
	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, itemQuery)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = []orderitem.OrderItem{}
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return nil
}

type orderEvent struct {
	Event string      `json:"event"`
	Order order.Order `json:"order"`
}

// enqueueEvent stores an order event in the outbox within the current transaction.
func enqueueEvent(ctx context.Context, repo ioutbox.Repository, event string, o order.Order) error {
	payload, err := json.Marshal(orderEvent{Event: event, Order: o})
	if err != nil {
		return err
	}

	queueName := viper.GetString("rabbitmq.outbox.queue_name")
	if queueName == "" {
		queueName = "order.events"
	}

	now := time.Now()

	return repo.Insert(ctx, outbox.Message{
		QueueName:   queueName,
		RoutingKey:  queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  10,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

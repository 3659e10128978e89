package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               int64     `db:"id"`
	CustomerName     string    `db:"customer_name"`
	TotalPrice       float64   `db:"total_price"`
	TotalCarbonSaved float64   `db:"total_carbon_saved"`
	CreatedAt        time.Time `db:"created_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:               o.Id,
		CustomerName:     o.CustomerName,
		TotalPrice:       o.TotalPrice,
		TotalCarbonSaved: o.TotalCarbonSaved,
		Timestamp:        o.CreatedAt,
		Items:            []orderitem.OrderItem{}, // Populated separately
	}
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:               o.ID,
		CustomerName:     o.CustomerName,
		TotalPrice:       o.TotalPrice,
		TotalCarbonSaved: o.TotalCarbonSaved,
		CreatedAt:        o.Timestamp,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts one order and returns it with the generated id and timestamp.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := r.sb.
		Insert("orders").
		Columns("customer_name", "total_price", "total_carbon_saved", "created_at").
		Values(o.CustomerName, o.TotalPrice, o.TotalCarbonSaved, o.Timestamp).
		Suffix("RETURNING id, customer_name, total_price, total_carbon_saved, created_at").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.CustomerName,
		&dal.TotalPrice,
		&dal.TotalCarbonSaved,
		&dal.CreatedAt,
	)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	model := dal.ToModel()
	model.Items = append(model.Items, o.Items...)

	return *model, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select("id", "customer_name", "total_price", "total_carbon_saved", "created_at").
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.CustomerName,
			&dal.TotalPrice,
			&dal.TotalCarbonSaved,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update overwrites the scalar fields of an order row.
// The creation timestamp is never touched.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) (int64, error) {
	query, args, err := r.sb.
		Update("orders").
		Set("customer_name", o.CustomerName).
		Set("total_price", o.TotalPrice).
		Set("total_carbon_saved", o.TotalCarbonSaved).
		Where(sq.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update order: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes one order row.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := r.sb.
		Delete("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected(), nil
}

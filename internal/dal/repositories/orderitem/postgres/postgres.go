package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id          int64   `db:"id"`
	OrderId     int64   `db:"order_id"`
	ItemName    string  `db:"item_name"`
	UnitPrice   float64 `db:"unit_price"`
	Quantity    int     `db:"quantity"`
	CarbonSaved float64 `db:"carbon_saved"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:          oi.Id,
		OrderID:     oi.OrderId,
		ItemName:    oi.ItemName,
		UnitPrice:   oi.UnitPrice,
		Quantity:    oi.Quantity,
		CarbonSaved: oi.CarbonSaved,
	}
}

// OrderItemDalFromModel converts the service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		Id:          oi.ID,
		OrderId:     oi.OrderID,
		ItemName:    oi.ItemName,
		UnitPrice:   oi.UnitPrice,
		Quantity:    oi.Quantity,
		CarbonSaved: oi.CarbonSaved,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple order items as one statement and returns them with
// generated ids. Items must already carry their parent order id.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query := r.sb.
		Insert("order_items").
		Columns("order_id", "item_name", "unit_price", "quantity", "carbon_saved").
		Suffix("RETURNING id, order_id, item_name, unit_price, quantity, carbon_saved")

	for _, item := range items {
		query = query.Values(item.OrderID, item.ItemName, item.UnitPrice, item.Quantity, item.CarbonSaved)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bulk insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(items))
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ItemName,
			&dal.UnitPrice,
			&dal.Quantity,
			&dal.CarbonSaved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select("id", "order_id", "item_name", "unit_price", "quantity", "carbon_saved").
		From("order_items")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
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
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ItemName,
			&dal.UnitPrice,
			&dal.Quantity,
			&dal.CarbonSaved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByOrderID removes all items belonging to one order.
// Runs before the parent order row is deleted so the foreign key never dangles.
func (r *PostgresOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	query, args, err := r.sb.
		Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order items: %w", err)
	}

	return tag.RowsAffected(), nil
}

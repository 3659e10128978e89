package postgresrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/greenbasket/order-svc/internal/service/models/order"
)

func TestOrderDalToModelMaterializesEmptyItems(t *testing.T) {
	dal := OrderDal{
		Id:               7,
		CustomerName:     "Alice",
		TotalPrice:       20,
		TotalCarbonSaved: 1.5,
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	model := dal.ToModel()

	assert.Equal(t, int64(7), model.ID)
	assert.Equal(t, "Alice", model.CustomerName)
	// Orders always serialize items as [], never null.
	assert.NotNil(t, model.Items)
	assert.Empty(t, model.Items)
}

func TestOrderDalFromModelKeepsTimestamp(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	dal := OrderDalFromModel(&order.Order{ID: 7, CustomerName: "Alice", Timestamp: ts})

	assert.Equal(t, ts, dal.CreatedAt)
	assert.Equal(t, int64(7), dal.Id)
}

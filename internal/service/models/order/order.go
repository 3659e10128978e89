package order

import (
	"time"

	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
)

// Order represents a customer order in the system.
type Order struct {
	ID               int64                 `json:"id"`
	CustomerName     string                `json:"customerName"`
	TotalPrice       float64               `json:"totalPrice"`
	TotalCarbonSaved float64               `json:"totalCarbonSaved"`
	Timestamp        time.Time             `json:"timestamp"`
	Items            []orderitem.OrderItem `json:"items"`
}

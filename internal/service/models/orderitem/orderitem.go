package orderitem

// OrderItem represents one line item belonging to exactly one order.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	ItemName    string  `json:"itemName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	CarbonSaved float64 `json:"carbonSaved"`
}

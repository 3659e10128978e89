package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, o order.Order) (int64, error)
}

// itemInUpdateOrderRequest represents an item in an update order request.
type itemInUpdateOrderRequest struct {
	ItemName    string  `json:"itemName"    validate:"required"`
	UnitPrice   float64 `json:"unitPrice"   validate:"gte=0"`
	Quantity    int     `json:"quantity"    validate:"gt=0"`
	CarbonSaved float64 `json:"carbonSaved"`
}

// updateOrderRequest represents an update order request. The supplied item set
// wholesale-replaces whatever the order had before.
type updateOrderRequest struct {
	CustomerName     string                     `json:"customerName"     validate:"required"`
	Items            []itemInUpdateOrderRequest `json:"items"            validate:"dive"`
	TotalPrice       float64                    `json:"totalPrice"       validate:"gte=0"`
	TotalCarbonSaved float64                    `json:"totalCarbonSaved"`
}

// Validate validates the update order request.
func (r *updateOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts updateOrderRequest to order.Order.
func (r *updateOrderRequest) toModel(id int64) order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.OrderItem{
			ItemName:    item.ItemName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			CarbonSaved: item.CarbonSaved,
		}
	}

	return order.Order{
		ID:               id,
		CustomerName:     r.CustomerName,
		TotalPrice:       r.TotalPrice,
		TotalCarbonSaved: r.TotalCarbonSaved,
		Items:            items,
	}
}

// updateOrderResponse represents an update order response. Changes counts the
// order-row update only, not item changes.
type updateOrderResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

// UpdateOrder handles the update order request.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, "invalid order id")
		slog.Error("Error parsing order id", "error", err)

		return
	}

	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for update order", "error", err)

		return
	}

	changes, err := service.Update(r.Context(), req.toModel(id))
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error updating order", "error", err)

		return
	}

	jsonresp.Write(w, http.StatusOK, updateOrderResponse{
		Message: "success",
		Changes: changes,
	})
}

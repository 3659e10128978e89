package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ItemName    string  `json:"itemName"    validate:"required"`
	UnitPrice   float64 `json:"unitPrice"   validate:"gte=0"`
	Quantity    int     `json:"quantity"    validate:"gt=0"`
	CarbonSaved float64 `json:"carbonSaved"`
}

// toModel converts itemInCreateOrderRequest to orderitem.OrderItem.
func (r *itemInCreateOrderRequest) toModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ItemName:    r.ItemName,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
		CarbonSaved: r.CarbonSaved,
	}
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	CustomerName     string                     `json:"customerName"     validate:"required"`
	Items            []itemInCreateOrderRequest `json:"items"            validate:"dive"`
	TotalPrice       float64                    `json:"totalPrice"       validate:"gte=0"`
	TotalCarbonSaved float64                    `json:"totalCarbonSaved"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.Order.
func (r *createOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		items[i] = r.Items[i].toModel()
	}

	return order.Order{
		CustomerName:     r.CustomerName,
		TotalPrice:       r.TotalPrice,
		TotalCarbonSaved: r.TotalCarbonSaved,
		Items:            items,
	}
}

// createOrderResponse represents a create order response.
type createOrderResponse struct {
	Message string      `json:"message"`
	Data    order.Order `json:"data"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	created, err := service.Create(r.Context(), req.toModel())
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error creating order", "error", err)

		return
	}

	jsonresp.Write(w, http.StatusOK, createOrderResponse{
		Message: "success",
		Data:    created,
	})
}

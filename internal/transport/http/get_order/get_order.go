package getorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service is an interface for the service layer.
type service interface {
	Get(ctx context.Context, id int64) (*order.Order, error)
}

// getOrderResponse represents a get order response. Data is null when no order
// with the requested id exists.
type getOrderResponse struct {
	Message string       `json:"message"`
	Data    *order.Order `json:"data"`
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, "invalid order id")
		slog.Error("Error parsing order id", "error", err)

		return
	}

	o, err := service.Get(r.Context(), id)
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error getting order", "error", err)

		return
	}

	jsonresp.Write(w, http.StatusOK, getOrderResponse{
		Message: "success",
		Data:    o,
	})
}

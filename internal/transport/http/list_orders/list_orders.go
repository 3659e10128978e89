package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context) ([]order.Order, error)
}

// listOrdersResponse represents a list orders response.
type listOrdersResponse struct {
	Message string        `json:"message"`
	Data    []order.Order `json:"data"`
}

// ListOrders handles the list orders request. Orders come back newest first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	orders, err := service.List(r.Context())
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error listing orders", "error", err)

		return
	}

	jsonresp.Write(w, http.StatusOK, listOrdersResponse{
		Message: "success",
		Data:    orders,
	})
}

package deleteorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service is an interface for the service layer.
type service interface {
	Delete(ctx context.Context, id int64) (int64, error)
}

// deleteOrderResponse represents a delete order response. Changes counts the
// order-row deletion only.
type deleteOrderResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

// DeleteOrder handles the delete order request.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, "invalid order id")
		slog.Error("Error parsing order id", "error", err)

		return
	}

	changes, err := service.Delete(r.Context(), id)
	if err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error deleting order", "error", err)

		return
	}

	jsonresp.Write(w, http.StatusOK, deleteOrderResponse{
		Message: "deleted",
		Changes: changes,
	})
}

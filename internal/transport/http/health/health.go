package health

import (
	"net/http"
	"time"

	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service reports whether the generative model credential is configured.
type service interface {
	HasAPIKey() bool
}

// healthResponse represents a health check response.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	HasAPIKey bool   `json:"hasApiKey"`
}

// Health handles the health check request.
func Health(w http.ResponseWriter, _ *http.Request, service service) {
	jsonresp.Write(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().Format(time.RFC3339),
		HasAPIKey: service.HasAPIKey(),
	})
}

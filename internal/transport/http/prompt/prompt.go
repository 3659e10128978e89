package prompt

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/greenbasket/order-svc/internal/transport/http/jsonresp"
)

// service is an interface for the service layer.
type service interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// promptRequest represents a prompt request.
type promptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// Validate validates the prompt request.
func (r *promptRequest) Validate() error {
	return validator.New().Struct(r)
}

// promptResponse represents a prompt response.
type promptResponse struct {
	Response string `json:"response"`
}

// AnswerPrompt handles the prompt request. A recognized prompt always reports
// success even when the answer is a local fallback; only an unrecognized prompt
// after a real provider failure reports a server error, still carrying the
// fallback text.
func AnswerPrompt(w http.ResponseWriter, r *http.Request, service service) {
	req := promptRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for prompt", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		jsonresp.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for prompt", "error", err)

		return
	}

	text, err := service.Answer(r.Context(), req.Prompt)
	if err != nil {
		jsonresp.Write(w, http.StatusInternalServerError, promptResponse{Response: text})
		slog.Error("Error answering prompt", "error", err)

		return
	}

	jsonresp.Write(w, http.StatusOK, promptResponse{Response: text})
}

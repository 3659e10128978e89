package jsonresp

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Write sends v as a JSON response with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error sends the contract's error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"error": message})
}

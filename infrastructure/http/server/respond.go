package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"folio-gate/errors"
)

type errorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	RetryAfter *int   `json:"retryAfter,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeChatError renders a gate rejection. Only the generic message and the
// code reach the client.
func writeChatError(w http.ResponseWriter, ce *errors.ChatError) {
	body := errorResponse{Error: ce.Message, Code: string(ce.Code)}
	if ce.Code == errors.CodeRateLimited {
		retryAfter := max(ce.RetryAfter, 1)
		body.RetryAfter = &retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	writeJSON(w, ce.Status, body)
}

func methodNotAllowed(w http.ResponseWriter, message string, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	writeError(w, http.StatusMethodNotAllowed, message)
}

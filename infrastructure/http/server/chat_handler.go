package server

import (
	"encoding/json"
	"net/http"

	"folio-gate/errors"
)

type chatRequest struct {
	Prompt *string `json:"prompt"`
}

type chatUsage struct {
	Tokens int `json:"tokens"`
}

type chatResponse struct {
	Response string     `json:"response"`
	Usage    *chatUsage `json:"usage,omitempty"`
}

// handleChat serves POST /api/chat. Malformed bodies are refused before the
// gate runs, so they cost no quota.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Method not allowed. Use POST to send messages.", http.MethodPost)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Prompt == nil {
		s.log.Debug("Rejected chat body", "request_id", requestID(r.Context()), "error", err)
		writeChatError(w, errors.ErrInvalidRequest)
		return
	}

	clientKey := s.keyer.Key(r)
	reply, err := s.chat.HandleChatRequest(r.Context(), clientKey, *body.Prompt)
	if err != nil {
		ce := errors.AsChatError(err)
		s.log.Info("Chat request rejected",
			"request_id", requestID(r.Context()),
			"client", clientKey,
			"code", ce.Code,
			"kind", ce.Kind.String(),
			"status", ce.Status)
		writeChatError(w, ce)
		return
	}

	response := chatResponse{Response: reply.Text}
	if reply.TokenCount != nil {
		response.Usage = &chatUsage{Tokens: *reply.TokenCount}
	}
	writeJSON(w, http.StatusOK, response)
}

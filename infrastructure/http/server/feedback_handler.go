package server

import (
	"encoding/json"
	"net/http"

	"folio-gate/auth"
	"folio-gate/domain"
	"folio-gate/errors"
)

type feedbackRequest struct {
	Name                  string `json:"name"`
	Design                string `json:"design"`
	Usability             string `json:"usability"`
	Content               string `json:"content"`
	AdditionalSuggestions string `json:"additionalSuggestions"`
}

// handleFeedback accepts submissions from anyone and lists them to admins only.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.submitFeedback(w, r)
	case http.MethodGet:
		s.requireRole(auth.RoleAdmin, s.listFeedback)(w, r)
	default:
		methodNotAllowed(w, "Method Not Allowed", http.MethodGet, http.MethodPost)
	}
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	var body feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	_, err := s.feedback.Submit(domain.Feedback{
		Name:                  body.Name,
		Design:                body.Design,
		Usability:             body.Usability,
		Content:               body.Content,
		AdditionalSuggestions: body.AdditionalSuggestions,
	})
	switch {
	case errors.Is(err, errors.ErrFeedbackIncomplete):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "All required fields must be filled"})
	case err != nil:
		s.log.Error("Feedback not stored", "request_id", requestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server error."})
	default:
		writeJSON(w, http.StatusCreated, messageResponse{Message: "Feedback submitted successfully."})
	}
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := s.feedback.List()
	if err != nil {
		s.log.Error("Feedback listing failed", "request_id", requestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to fetch feedback."})
		return
	}
	if feedback == nil {
		feedback = []domain.Feedback{}
	}
	if claims, ok := r.Context().Value(claimsKey).(*auth.CustomClaims); ok {
		s.log.Info("Feedback listed", "by", claims.Subject, "count", len(feedback))
	}
	writeJSON(w, http.StatusOK, feedback)
}

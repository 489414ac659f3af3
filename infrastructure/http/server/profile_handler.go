package server

import (
	"net/http"

	"folio-gate/domain"
	"folio-gate/errors"
)

type mediaResponse struct {
	Posts []domain.MediaPost `json:"posts"`
}

func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Method not allowed", http.MethodGet)
		return
	}
	calendar, err := s.profile.Contributions(r.Context())
	if err != nil {
		s.writeProxyError(w, r, "github", "Failed to fetch GitHub data", err)
		return
	}
	writeJSON(w, http.StatusOK, calendar)
}

func (s *Server) handleInstagram(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Method not allowed", http.MethodGet)
		return
	}
	posts, err := s.profile.Media(r.Context())
	if err != nil {
		s.writeProxyError(w, r, "instagram", "Failed to fetch Instagram posts", err)
		return
	}
	writeJSON(w, http.StatusOK, mediaResponse{Posts: posts})
}

func (s *Server) writeProxyError(w http.ResponseWriter, r *http.Request, source, message string, err error) {
	if errors.Is(err, errors.ErrMissingCredential) {
		s.log.Error("Proxy credential not configured", "source", source)
		writeError(w, http.StatusServiceUnavailable, errors.ErrServiceUnavailable.Message)
		return
	}
	s.log.Error("Proxy call failed", "source", source, "request_id", requestID(r.Context()), "error", err)
	writeError(w, http.StatusBadGateway, message)
}

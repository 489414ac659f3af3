package server

import (
	"log/slog"
	"net/http"

	"folio-gate/auth"
	"folio-gate/observability"
	"folio-gate/services"
)

const defaultMaxBodyBytes = 16 << 10

// Server exposes the chat gate and the portfolio proxy routes over HTTP.
type Server struct {
	log          *slog.Logger
	chat         services.IChatService
	feedback     services.IFeedbackService
	profile      services.IProfileService
	auth         services.IAuthService
	monitor      *observability.Monitor
	keyer        ClientKeyer
	maxBodyBytes int64
}

func NewServer(log *slog.Logger,
	chat services.IChatService,
	feedback services.IFeedbackService,
	profile services.IProfileService,
	auth services.IAuthService,
	monitor *observability.Monitor,
	keyer ClientKeyer) *Server {
	return &Server{
		log:          log,
		chat:         chat,
		feedback:     feedback,
		profile:      profile,
		auth:         auth,
		monitor:      monitor,
		keyer:        keyer,
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// Routes builds the HTTP handler. Method checks live in the handlers because
// each route answers a wrong method with its own JSON body.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/chatgpt", s.handleChat)
	mux.HandleFunc("/api/github", s.handleGitHub)
	mux.HandleFunc("/api/instagram", s.handleInstagram)
	mux.HandleFunc("/api/feedback", s.handleFeedback)
	mux.HandleFunc("/api/stats", s.requireRole(auth.RoleAdmin, s.handleStats))
	mux.HandleFunc("/healthz", s.handleHealth)
	return withRequestLog(s.log, mux)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Method not allowed", http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.monitor.GetLatest())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package analyzer

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Server handles HTTP requests for receipt analyses
type Server struct {
	service   *Service
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/analyses", s.requireAuth(s.handleListAnalyses))
	s.mux.HandleFunc("POST /api/analyses", s.requireAuth(s.handleUploadReceipt))
	s.mux.HandleFunc("GET /api/analyses/{id}", s.requireAuth(s.handleGetAnalysis))
	s.mux.HandleFunc("GET /api/analyses/{id}/image", s.requireAuth(s.handleGetAnalysisImage))
	s.mux.HandleFunc("DELETE /api/analyses/{id}", s.requireAuth(s.handleDeleteAnalysis))
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Eco Scan"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// Handler returns the server's handler for testing
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server on the given address
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

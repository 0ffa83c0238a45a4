// Package web serves the ordering site: five pages and the JSON endpoints
// behind their interactions. Handlers hold no state of their own; the cart
// registry, catalog, auth gateway, and franchise service are injected.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zafran-house/ordering/internal/auth"
	"github.com/zafran-house/ordering/internal/cart"
	"github.com/zafran-house/ordering/internal/catalog"
	"github.com/zafran-house/ordering/internal/franchise"
	"github.com/zafran-house/ordering/internal/logging"
	"github.com/zafran-house/ordering/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server bundles the site handlers.
type Server struct {
	logger    *logging.Logger
	catalog   *catalog.Service
	carts     *cart.Registry
	auth      *auth.Gateway
	franchise *franchise.Service
	templates *template.Template
}

// NewServer creates the site server.
func NewServer(logger *logging.Logger, cat *catalog.Service, carts *cart.Registry, gw *auth.Gateway, fr *franchise.Service) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"rupees": formatRupees,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		logger:    logger,
		catalog:   cat,
		carts:     carts,
		auth:      gw,
		franchise: fr,
		templates: tmpl,
	}, nil
}

// Router builds the HTTP routes.
func (s *Server) Router(allowedOrigins []string) *mux.Router {
	r := mux.NewRouter()

	tracing := middleware.NewTracingMiddleware(s.logger)
	cors := middleware.NewCORSMiddleware(allowedOrigins)
	r.Use(tracing.Handler, cors.Handler, s.cartSession)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFS))).Methods(http.MethodGet)

	// Pages
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/menu", s.handleMenu).Methods(http.MethodGet)
	r.HandleFunc("/menu/{id}", s.handleMenuItem).Methods(http.MethodGet)
	r.HandleFunc("/cart", s.handleCartPage).Methods(http.MethodGet)
	r.HandleFunc("/auth", s.handleAuthPage).Methods(http.MethodGet)

	// Cart operations
	r.HandleFunc("/cart/items", s.handleCartAdd).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", s.handleCartUpdate).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", s.handleCartRemove).Methods(http.MethodDelete)
	r.HandleFunc("/cart/clear", s.handleCartClear).Methods(http.MethodPost)

	// Auth operations
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset", s.handleReset).Methods(http.MethodPost)

	// Franchise lead form, rate limited per client
	limiter := middleware.NewRateLimiter(1, 3, s.logger)
	r.Handle("/franchise/applications",
		limiter.Handler(http.HandlerFunc(s.handleFranchise))).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "ordering"})
}

// render writes a page template, falling back to a bare 500 when the
// template itself fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(r.Context(), "render template", err, map[string]interface{}{"template": name})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// formatRupees renders a price the way the site shows it.
func formatRupees(amount int64) string {
	return fmt.Sprintf("₹%d", amount)
}

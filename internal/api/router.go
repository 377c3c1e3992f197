package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/meur/cs2hub/internal/pkg/apierr"
	"github.com/meur/cs2hub/internal/storage"
)

// Server holds the HTTP server dependencies
type Server struct {
	store          *storage.Store
	router         chi.Router
	allowedOrigins []string
}

// New creates a new API server
func New(store *storage.Store, allowedOrigins []string) *Server {
	s := &Server{
		store:          store,
		router:         chi.NewRouter(),
		allowedOrigins: allowedOrigins,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	for _, mw := range requestLogger() {
		s.router.Use(mw)
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Skins: one resource, the id travels in the body (PUT) or the query (DELETE)
		r.Get("/skins", s.handleListSkins)
		r.Post("/skins", s.handleCreateSkin)
		r.Put("/skins", s.handleUpdateSkin)
		r.Delete("/skins", s.handleDeleteSkin)

		// Trades
		r.Get("/trades", s.handleListTrades)
		r.Post("/trades", s.handleCreateTrade)
		r.Put("/trades", s.handleUpdateTrade)

		// Server browser
		r.Get("/servers", s.handleListServers)
	})

	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, apierr.New(http.StatusMethodNotAllowed, apierr.CodeMethodNotAllowed, "method not allowed"))
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Ping(r.Context()); err != nil {
			respondError(w, apierr.ErrInternal.WithMessage("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s.router.Handle("/metrics", promhttp.Handler())
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, e *apierr.Error) {
	respondJSON(w, e.StatusCode, e.Body())
}

// respondInternal logs the cause and answers 500 without leaking it
func respondInternal(w http.ResponseWriter, r *http.Request, err error, message string) {
	log.Ctx(r.Context()).Error().Stack().Err(err).Msg(message)
	respondError(w, apierr.ErrInternal.WithMessage("%s", message))
}

func decodeJSON(r *http.Request, v interface{}) error {
	return errors.Wrap(json.NewDecoder(r.Body).Decode(v), "decode request body")
}

type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

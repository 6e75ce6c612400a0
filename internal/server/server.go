// internal/server/server.go

// Package server wires the HTTP surface: the Discord login flow, the
// session-holder endpoints, and the roster API the bot writes to.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tlycrimson/bot-website-api/internal/auth"
	"github.com/tlycrimson/bot-website-api/internal/db"
	"github.com/tlycrimson/bot-website-api/internal/log"
	"github.com/tlycrimson/bot-website-api/internal/oauth"
	"github.com/tlycrimson/bot-website-api/internal/roster"
	"golang.org/x/crypto/acme/autocert"
)

type Server struct {
	db          *db.DB
	router      *chi.Mux
	authService *auth.Service
	roster      *roster.Handler

	// OAuth login flow collaborators
	provider oauth.Provider
	states   oauth.StateStore
	origins  *oauth.OriginSet

	// HTTP server for graceful shutdown
	httpServer *http.Server

	// HTTPS fields
	httpsServer  *http.Server
	httpRedirect *http.Server
	autocertMgr  *autocert.Manager
}

// Config holds the collaborators the server needs beyond the database.
// Provider, States and Origins are built by the caller because their
// concrete types are chosen by configuration.
type Config struct {
	JWTSecret  string
	SessionTTL time.Duration

	Provider oauth.Provider
	States   oauth.StateStore
	Origins  *oauth.OriginSet
}

func New(database *db.DB, cfg Config) *Server {
	s := &Server{
		db:          database,
		router:      chi.NewRouter(),
		authService: auth.NewService(cfg.JWTSecret, cfg.SessionTTL),
		roster:      roster.NewHandler(roster.NewStore(database)),
		provider:    cfg.Provider,
		states:      cfg.States,
		origins:     cfg.Origins,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS middleware for browser-based apps
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(log.RequestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))

	s.router.Get("/", s.roster.HandleRoot)
	s.router.Get("/health", s.handleHealth)

	// Public roster reads
	s.router.Get("/leaderboard", s.roster.HandleLeaderboard)
	s.router.Get("/hr", s.roster.HandleListHR)
	s.router.Get("/lr", s.roster.HandleListLR)

	// Login flow
	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/login", s.handleLogin)
		r.Get("/callback", s.handleCallback)

		// Session-holder routes
		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/me", s.handleMe)
		})
	})

	// Roster writes require a bot or admin API key
	s.router.Group(func(r chi.Router) {
		r.Use(s.apiKeyMiddleware)

		r.Post("/hr", s.roster.HandleCreateHR)
		r.Put("/hr/{id}", s.roster.HandleUpdateHR)
		r.Delete("/hr/{id}", s.roster.HandleDeleteHR)

		r.Post("/lr", s.roster.HandleCreateLR)
		r.Put("/lr/{id}", s.roster.HandleUpdateLR)
		r.Delete("/lr/{id}", s.roster.HandleDeleteLR)

		r.Post("/users", s.roster.HandleCreateUser)
		r.Put("/users/{id}", s.roster.HandleUpdateUser)
		r.Delete("/users/{id}", s.roster.HandleDeleteUser)
	})
}

func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server(s).
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpsServer != nil {
		if err := s.httpsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTPS server: %w", err))
		}
	}

	if s.httpRedirect != nil {
		if err := s.httpRedirect.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP redirect server: %w", err))
		}
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

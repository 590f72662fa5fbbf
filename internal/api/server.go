// Package api provides REST API access to stored incidents.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"avherald_scraper/internal/storage"
)

// Server serves stored incidents over HTTP.
type Server struct {
	store storage.IncidentStore
	port  int
}

// NewServer creates an API server backed by the given store.
func NewServer(store storage.IncidentStore, port int) *Server {
	return &Server{store: store, port: port}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Mount("/api/v1", s.Router())
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + strconv.Itoa(s.port)
	log.Printf("incident API starting at http://localhost%s", addr)
	return http.ListenAndServe(addr, r)
}

// Router returns the API routes for embedding in other servers.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/incidents", s.handleListIncidents)
	r.Get("/stats", s.handleStats)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	params := storage.QueryParams{
		Airline:  r.URL.Query().Get("airline"),
		Aircraft: r.URL.Query().Get("aircraft"),
		Category: r.URL.Query().Get("category"),
		Limit:    queryInt(r, "limit", 100),
		Offset:   queryInt(r, "offset", 0),
	}

	incidents, err := s.store.QueryIncidents(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(incidents),
		"incidents": incidents,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	column := r.URL.Query().Get("by")
	if column == "" {
		column = "airline"
	}
	if column != "airline" && column != "aircraft" {
		writeError(w, http.StatusBadRequest, "by must be 'airline' or 'aircraft'")
		return
	}

	counts, err := s.store.CountBy(r.Context(), column, queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"by":     column,
		"counts": counts,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

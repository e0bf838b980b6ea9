package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter mounts the public and authenticated routes
func NewRouter(h *Handler, auth mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Protected routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth)
	api.HandleFunc("/reports/fees", h.FeeReport).Methods(http.MethodPost)
	api.HandleFunc("/dates/reformat", h.ReformatDates).Methods(http.MethodPost)
	api.HandleFunc("/dates/range", h.DateRange).Methods(http.MethodGet)
	api.HandleFunc("/dates/pairs", h.DatePairs).Methods(http.MethodPost)
	return r
}

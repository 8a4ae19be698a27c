package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the handler onto the versioned API surface plus the
// operational endpoints.
func NewRouter(h *Handler, logger *logrus.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	if logger != nil {
		apiV1.Use(requestLogger(logger))
	}

	apiV1.HandleFunc("/login", h.Login).Methods("POST")
	apiV1.HandleFunc("/transfers", h.CreateTransfer).Methods("POST")
	apiV1.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	apiV1.HandleFunc("/accounts/{username}", h.CloseAccount).Methods("DELETE")
	apiV1.HandleFunc("/accounts/{username}/summary", h.GetSummary).Methods("GET")
	apiV1.HandleFunc("/accounts/{username}/movements", h.GetMovements).Methods("GET")

	return r
}

func requestLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("request handled")
		})
	}
}

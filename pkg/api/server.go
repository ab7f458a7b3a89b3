package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/seafarer/pkg/api/handlers"
	"github.com/cbodonnell/seafarer/pkg/api/middleware"
	authhandlers "github.com/cbodonnell/seafarer/pkg/auth/handlers"
	authproviders "github.com/cbodonnell/seafarer/pkg/auth/providers"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/repositories"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port         int
	TLS          *TLSConfig
	AllowOrigin  string
	AuthProvider authproviders.AuthProvider
	AuthHandler  authhandlers.AuthHandler
	Repository   repositories.Repository
	// LoginRate and LoginBurst throttle the login and register endpoints per client.
	LoginRate  rate.Limit
	LoginBurst int
	// Registry collects the server metrics. A new registry is used when nil.
	Registry *prometheus.Registry
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter builds the routes of the save service.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	allowOrigin := opts.AllowOrigin
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	loginBurst := opts.LoginBurst
	if loginBurst <= 0 {
		loginBurst = 1
	}

	metrics := middleware.NewMetrics(reg)
	authMiddleware := middleware.NewAuthMiddleware(opts.AuthProvider, opts.Repository)
	limiter := middleware.NewRateLimiter(opts.LoginRate, loginBurst)

	router := mux.NewRouter()
	router.Use(metrics.Middleware, middleware.NewCORSMiddleware(allowOrigin))

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.Handle("/auth/login", limiter.Middleware(handlers.HandleLogin(opts.AuthHandler))).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/auth/register", limiter.Middleware(handlers.HandleRegister(opts.AuthHandler))).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/auth/me", authMiddleware(handlers.HandleMe())).Methods(http.MethodGet, http.MethodOptions)
	router.Handle("/saves", authMiddleware(handlers.HandleListSaves(opts.Repository))).Methods(http.MethodGet)
	router.Handle("/saves", authMiddleware(handlers.HandleCreateSave(opts.Repository))).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/saves/{saveID}", authMiddleware(handlers.HandleDeleteSave(opts.Repository))).Methods(http.MethodDelete, http.MethodOptions)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteFailure(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return router
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

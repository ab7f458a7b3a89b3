package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cbodonnell/seafarer/pkg/api"
	authhandlers "github.com/cbodonnell/seafarer/pkg/auth/handlers"
	authproviders "github.com/cbodonnell/seafarer/pkg/auth/providers"
	"github.com/cbodonnell/seafarer/pkg/config"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/repositories"
	"golang.org/x/time/rate"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	cfg, err := config.LoadServer()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log.Info("Starting save service")
	ctx := context.Background()

	repository, err := openRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(ctx)

	var authProvider authproviders.AuthProvider
	var authHandler authhandlers.AuthHandler
	switch cfg.AuthProvider {
	case "local":
		issuer := authproviders.NewJWTAuthProvider(cfg.JWTSecret, cfg.TokenTTL)
		authProvider = issuer
		authHandler = authhandlers.NewLocalAuthHandler(repository, issuer)
	case "firebase":
		authProvider, err = authproviders.NewFirebaseAuthProvider(ctx, cfg.FirebaseProjectID, cfg.FirebaseAPIKey)
		if err != nil {
			panic(fmt.Sprintf("Failed to create Firebase auth provider: %v", err))
		}
		authHandler = authhandlers.NewFirebaseAuthHandler(cfg.FirebaseAPIKey)
	}
	log.Info("Using %s auth provider", cfg.AuthProvider)

	apiServerOpts := api.NewAPIServerOptions{
		Port:         cfg.Port,
		AllowOrigin:  cfg.AllowOrigin,
		AuthProvider: authProvider,
		AuthHandler:  authHandler,
		Repository:   repository,
		LoginRate:    rate.Limit(cfg.LoginRate),
		LoginBurst:   cfg.LoginBurst,
	}
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}

// openRepository picks the repository from the scheme of the database URL.
func openRepository(ctx context.Context, connStr string) (repositories.Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := strings.TrimPrefix(connStr, "sqlite://")
		return repositories.NewSQLiteRepository(ctx, path)
	case "postgres", "postgresql":
		return repositories.NewPostgresRepository(ctx, connStr)
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}

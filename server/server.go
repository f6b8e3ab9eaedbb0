// Package server wires the HTTP API together and runs it until the process
// is asked to stop.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go-url-shortener/auth"
	"go-url-shortener/config"
	"go-url-shortener/handlers"
	"go-url-shortener/services"
	"go-url-shortener/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API on cfg's port backed by store and blocks until SIGINT
// or SIGTERM, then drains in-flight requests.
func Run(logger *zap.Logger, cfg *config.Config, store storage.Store) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router, err := NewRouter(ctx, cfg, store, logger)
	if err != nil {
		return err
	}
	server := setupServer(cfg, router)

	go startServer(server, logger)

	return waitForShutdown(ctx, server, logger)
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(ctx context.Context, cfg *config.Config, store storage.Store, logger *zap.Logger) (*gin.Engine, error) {
	handler, err := setupHandler(ctx, cfg, store, logger)
	if err != nil {
		return nil, err
	}
	return setupRouter(handler, logger), nil
}

func setupHandler(ctx context.Context, cfg *config.Config, store storage.Store, logger *zap.Logger) (handlers.HandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	urlService := services.NewURLService(store, store, cfg.BaseURL, cfg.MaxGenerationAttempts, logger.Named("urls"))
	userURLService := services.NewUserURLService(store, cfg.BaseURL, logger.Named("user_urls"))
	authService := services.NewAuthService(store, auth.NewBcryptHasher(bcrypt.DefaultCost), codec, logger.Named("auth"))

	handler, err := handlers.NewHandler(handlerCtx, urlService, userURLService, authService, codec, cfg, logger.Named("http"))
	if err != nil {
		logger.Error("Failed to create handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("Handler created successfully")
	return handler, nil
}

func setupRouter(handler handlers.HandlerInterface, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger.Named("access")))
	handlers.RegisterRoutes(router, handler)
	return router
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}
}

func startServer(srv *http.Server, logger *zap.Logger) {
	logger.Info("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("Received signal. Initiating server shutdown...", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context cancelled. Initiating server shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}

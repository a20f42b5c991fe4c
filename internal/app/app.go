package app

import (
	"approval-api/internal/config"
	"approval-api/internal/handlers"
	"approval-api/internal/metrics"
	"approval-api/internal/middleware"
	"approval-api/internal/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg     config.ServerConfig
	service *services.ApprovalService
}

func NewApp(cfg config.ServerConfig, service *services.ApprovalService) *App {
	return &App{cfg: cfg, service: service}
}

// Router builds the full handler tree including middleware.
func (a *App) Router() http.Handler {
	router := mux.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logging())

	router.HandleFunc("/health", health).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	handlers.NewApprovalHandlers(a.service).Register(router)

	return router
}

// Run serves HTTP until SIGINT/SIGTERM or a server failure.
func (a *App) Run() error {
	server := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      a.Router(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		log.Printf("Received signal: %s. Shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}

func health(w http.ResponseWriter, _ *http.Request) {
	handlers.WriteJSON(w, map[string]string{
		"status":    "ok",
		"service":   "approval-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"nailbook/pkg/config"
	"nailbook/pkg/contracts"
	"nailbook/pkg/middleware"
)

type Application struct {
	cfg    *config.Config
	server *http.Server
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp wires the action dispatcher (plus health endpoints) behind the
// middleware stack and configures the HTTP server.
func (a *Application) SetApp(appHandler contracts.RouteRegistrar, healthHandler contracts.RouteRegistrar) {
	router := httprouter.New()
	appHandler.RegisterRoutes(router)
	healthHandler.RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      h,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run(onShutdown ...func()) {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown(onShutdown)
	}
}

func (a *Application) gracefulShutdown(onShutdown []func()) {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	for _, fn := range onShutdown {
		fn()
	}
	a.cfg.Client.GracefulShutdown()

	a.cfg.Log.Info("Server stopped gracefully")
}

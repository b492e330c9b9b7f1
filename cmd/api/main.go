package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"soltoken/internal/handlers"
	"soltoken/internal/middleware"
	"soltoken/internal/routes"
	"soltoken/internal/store"
	"soltoken/internal/token"
	"soltoken/pkg/config"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	settings, err := config.LoadSettings(os.Getenv("ENV_FILE"))
	if err != nil {
		log.Fatal("Failed to load settings: ", err)
	}
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := config.InitDB(); err != nil {
		log.Fatal(err)
	}
	defer config.CloseDB()

	svc, err := token.NewFromSettings(settings, log.StandardLogger())
	if err != nil {
		log.Fatal("Failed to create token service: ", err)
	}

	limiter := middleware.NewRateLimiters(middleware.DefaultRateLimiterConfig())
	stop := make(chan struct{})
	defer close(stop)
	go limiter.RunPruner(stop)

	r := routes.SetupRouter(handlers.NewHandler(store.New(config.DB), svc), limiter)
	srv := &http.Server{Addr: ":" + settings.Port, Handler: r}

	go func() {
		log.Infof("API listening on :%s (simulated=%v)", settings.Port, svc.Simulated())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}

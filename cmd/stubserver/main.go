package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumea-app/SBM-ClientCore/internal/stubapi"
	"github.com/lumea-app/SBM-ClientCore/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	logFile := flag.String("log-file", "", "optional log file")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	// Инициализируем логгер
	log, err := logger.New(*logFile, *logLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting stub backend server...")
	log.Info("Seeded accounts: %s / %s / %s (password %q)",
		stubapi.SeedCustomerEmail, stubapi.SeedOwnerEmail, stubapi.SeedAdminEmail, stubapi.SeedPassword)

	// Настраиваем роутер: API стаба плюс endpoint метрик
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/api").Handler(stubapi.NewServer(log).Handler())

	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

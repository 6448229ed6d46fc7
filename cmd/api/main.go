package main

import (
	"net/http"
	"os"
	"time"

	"lab-equipment-maintenance/internal/adapters/auth/directory"
	"lab-equipment-maintenance/internal/platform/logger"
	"lab-equipment-maintenance/internal/ports/auth"
	"lab-equipment-maintenance/internal/router"

	"github.com/joho/godotenv"
)

// @title Lab Equipment Maintenance API
// @version 1.0
// @description Gestión de equipamiento científico: mantenciones, incidentes y visibilidad por rol.
// @BasePath /
func main() {
	// .env opcional; en producción las vars vienen del entorno
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.AuthVerifier
	if baseURL := os.Getenv("DIRECTORY_BASE_URL"); baseURL != "" {
		client, err := directory.NewClient(directory.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("DIRECTORY_API_KEY"),
		})
		if err != nil {
			log.Error("invalid directory config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = directory.NewVerifier(client)
	} else {
		log.Warn("no directory configured, running in dev auth mode", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

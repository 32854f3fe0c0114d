package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Start - starts the HTTP server with the health, QR and match-history
// endpoints.
func Start(logger *slog.Logger, port string, session sessionUseCase) error {
	h := newHandlers(logger, session)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", h.ping)
	mux.HandleFunc("GET /rooms/{code}/qr", h.roomQR)
	mux.HandleFunc("GET /players/{id}/results", h.playerResults)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

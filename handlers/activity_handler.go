package handlers

import (
	"context"
	"net/http"
	"time"

	"journeysAPI/internal/types/activity"
	"journeysAPI/middleware"
	"journeysAPI/services"
)

// ActivityHandler exposes the direct progression triggers: the login ping
// fired once per app open and the meditation completion event. Journal and
// addiction triggers live on their own handlers.
type ActivityHandler struct {
	activityService *services.ActivityService
	userService     *services.UserService
}

func NewActivityHandler(activityService *services.ActivityService, userService *services.UserService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		userService:     userService,
	}
}

func (h *ActivityHandler) LoginPing(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, activity.TypeLogin)
}

func (h *ActivityHandler) CompleteMeditation(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, activity.TypeMeditation)
}

func (h *ActivityHandler) record(w http.ResponseWriter, r *http.Request, activityType activity.Type) {
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

	result, err := h.activityService.Record(ctx, userID, activityType, nil)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record activity")
		return
	}

	middleware.CountActivity(string(activityType), len(result.NewBadges))
	respondWithJSON(w, http.StatusOK, result)
}

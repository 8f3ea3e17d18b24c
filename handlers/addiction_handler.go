package handlers

import (
	"context"
	"net/http"
	"time"

	"journeysAPI/internal/types/activity"
	"journeysAPI/middleware"
	"journeysAPI/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AddictionHandler struct {
	addictionService *services.AddictionService
	userService      *services.UserService
}

func NewAddictionHandler(addictionService *services.AddictionService, userService *services.UserService) *AddictionHandler {
	return &AddictionHandler{
		addictionService: addictionService,
		userService:      userService,
	}
}

func (h *AddictionHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	catalog, err := h.addictionService.GetCatalog(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load addiction types")
		return
	}

	respondWithJSON(w, http.StatusOK, catalog)
}

func (h *AddictionHandler) GetTracked(w http.ResponseWriter, r *http.Request) {
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

	tracked, err := h.addictionService.GetTracked(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load tracked addictions")
		return
	}

	respondWithJSON(w, http.StatusOK, tracked)
}

func (h *AddictionHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
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

	addictionTypeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid addiction type ID")
		return
	}

	result, err := h.addictionService.CheckIn(ctx, userID, addictionTypeID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.CountActivity(string(activity.TypeAddiction), len(result.NewBadges))
	respondWithJSON(w, http.StatusOK, result)
}

func (h *AddictionHandler) Reset(w http.ResponseWriter, r *http.Request) {
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

	addictionTypeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid addiction type ID")
		return
	}

	if err := h.addictionService.Reset(ctx, userID, addictionTypeID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to reset streak")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"journeysAPI/internal/types/store"
	"journeysAPI/middleware"
	"journeysAPI/services"

	"github.com/google/uuid"
)

type StoreHandler struct {
	storeService *services.StoreService
	userService  *services.UserService
}

func NewStoreHandler(storeService *services.StoreService, userService *services.UserService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		userService:  userService,
	}
}

func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.storeService.GetStore(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load store")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *StoreHandler) PurchaseItem(w http.ResponseWriter, r *http.Request) {
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

	var req store.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	purchase, err := h.storeService.PurchaseItem(ctx, userID, itemID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, purchase)
}

func (h *StoreHandler) GetUserItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.storeService.GetUserItems(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load owned items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

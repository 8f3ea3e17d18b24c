package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/journal"
	"journeysAPI/middleware"
	"journeysAPI/services"

	"github.com/google/uuid"
)

type JournalHandler struct {
	journalService *services.JournalService
	userService    *services.UserService
}

func NewJournalHandler(journalService *services.JournalService, userService *services.UserService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		userService:    userService,
	}
}

func (h *JournalHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
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

	var req journal.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, progression, err := h.journalService.SaveEntry(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if progression != nil {
		middleware.CountActivity(string(activity.TypeJournal), len(progression.NewBadges))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entry":       entry,
		"progression": progression,
	})
}

func (h *JournalHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
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

	year, month := yearMonthQuery(r)
	entries, err := h.journalService.GetEntries(ctx, userID, year, month)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
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

	year, month := yearMonthQuery(r)
	calendar, err := h.journalService.GetCalendar(ctx, userID, year, month)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	respondWithJSON(w, http.StatusOK, calendar)
}

func (h *JournalHandler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, func(ctx context.Context, userID uuid.UUID) (*journal.DaysStat, error) {
		return h.journalService.GetWeeklyStats(ctx, userID)
	})
}

func (h *JournalHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, func(ctx context.Context, userID uuid.UUID) (*journal.DaysStat, error) {
		return h.journalService.GetMonthlyStats(ctx, userID)
	})
}

func (h *JournalHandler) GetAllTimeStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, func(ctx context.Context, userID uuid.UUID) (*journal.DaysStat, error) {
		return h.journalService.GetAllTimeStats(ctx, userID)
	})
}

func (h *JournalHandler) stats(w http.ResponseWriter, r *http.Request, load func(context.Context, uuid.UUID) (*journal.DaysStat, error)) {
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

	stats, err := load(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load journal stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// yearMonthQuery reads ?year= and ?month=, defaulting to the current UTC month.
func yearMonthQuery(r *http.Request) (int, int) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	return year, month
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/activity"
	"journeysAPI/internal/types/journal"
	"journeysAPI/utils"
)

type JournalService struct {
	db         *pgxpool.Pool
	activities *ActivityService
}

func NewJournalService(db *pgxpool.Pool, activities *ActivityService) *JournalService {
	return &JournalService{db: db, activities: activities}
}

// SaveEntry upserts today's entry and feeds the progression engine. The
// entry save is the primary action: a progression failure is logged and the
// save still succeeds, with the engine catching up on the next activity.
func (s *JournalService) SaveEntry(ctx context.Context, userID uuid.UUID, req *journal.SaveEntryRequest) (*journal.Entry, *activity.Result, error) {
	if req.MoodScore < 1 || req.MoodScore > 10 {
		return nil, nil, fmt.Errorf("mood score must be between 1 and 10")
	}

	today := utils.CalendarDate(time.Now())

	query := `
	INSERT INTO journal_entries (id, user_id, date, mood_score, content, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	ON CONFLICT (user_id, date)
	DO UPDATE SET mood_score = $4, content = $5, updated_at = NOW()
	RETURNING id, user_id, date, mood_score, content, created_at, updated_at
	`

	entry := &journal.Entry{}
	err := s.db.QueryRow(ctx, query, uuid.New(), userID, today, req.MoodScore, req.Content).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.MoodScore,
		&entry.Content,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	progression, err := s.activities.Record(ctx, userID, activity.TypeJournal, nil)
	if err != nil {
		log.Printf("JournalService: progression update failed for user %s: %v", userID, err)
		progression = nil
	}

	return entry, progression, nil
}

// GetEntries lists a month of entries, newest first.
func (s *JournalService) GetEntries(ctx context.Context, userID uuid.UUID, year, month int) ([]*journal.Entry, error) {
	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	query := `
	SELECT id, user_id, date, mood_score, content, created_at, updated_at
	FROM journal_entries
	WHERE user_id = $1 AND date >= $2 AND date <= $3
	ORDER BY date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*journal.Entry
	for rows.Next() {
		e := &journal.Entry{}
		err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.MoodScore, &e.Content, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	if entries == nil {
		entries = []*journal.Entry{}
	}
	return entries, nil
}

func (s *JournalService) GetCalendar(ctx context.Context, userID uuid.UUID, year int, month int) (*journal.CalendarResponse, error) {
	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	query := `
	SELECT date, mood_score
	FROM journal_entries
	WHERE user_id = $1 AND date >= $2 AND date <= $3
	ORDER BY date
	`

	rows, err := s.db.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar: %w", err)
	}
	defer rows.Close()

	moodByDay := make(map[string]int)
	for rows.Next() {
		var date time.Time
		var mood int
		if err := rows.Scan(&date, &mood); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		moodByDay[date.Format("2006-01-02")] = mood
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar rows: %w", err)
	}

	var days []*journal.CalendarDay
	today := utils.CalendarDate(time.Now()).Format("2006-01-02")

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		mood, hasEntry := moodByDay[dateStr]
		days = append(days, &journal.CalendarDay{
			Date:      d,
			HasEntry:  hasEntry,
			MoodScore: mood,
			IsToday:   dateStr == today,
		})
	}

	return &journal.CalendarResponse{
		Year:  year,
		Month: month,
		Days:  days,
	}, nil
}

func (s *JournalService) GetWeeklyStats(ctx context.Context, userID uuid.UUID) (*journal.DaysStat, error) {
	query := `
	SELECT COALESCE(COUNT(*), 0) as days_journaled,
	       COALESCE(AVG(mood_score), 0) as average_mood
	FROM journal_entries
	WHERE user_id = $1
		AND date >= DATE_TRUNC('week', CURRENT_DATE)
		AND date <= CURRENT_DATE
	`

	stat := &journal.DaysStat{Period: "week", TotalDays: 7}
	err := s.db.QueryRow(ctx, query, userID).Scan(&stat.DaysJournaled, &stat.AverageMood)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly stats: %w", err)
	}

	return stat, nil
}

func (s *JournalService) GetMonthlyStats(ctx context.Context, userID uuid.UUID) (*journal.DaysStat, error) {
	query := `
	SELECT COALESCE(COUNT(*), 0) as days_journaled,
	       COALESCE(AVG(mood_score), 0) as average_mood
	FROM journal_entries
	WHERE user_id = $1
		AND date >= DATE_TRUNC('month', CURRENT_DATE)
		AND date <= CURRENT_DATE
	`

	daysInMonth := time.Now().AddDate(0, 1, -time.Now().Day()).Day()
	stat := &journal.DaysStat{Period: "month", TotalDays: daysInMonth}
	err := s.db.QueryRow(ctx, query, userID).Scan(&stat.DaysJournaled, &stat.AverageMood)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly stats: %w", err)
	}

	return stat, nil
}

func (s *JournalService) GetAllTimeStats(ctx context.Context, userID uuid.UUID) (*journal.DaysStat, error) {
	query := `
	SELECT COALESCE(COUNT(*), 0) as days_journaled,
	       COALESCE(COUNT(DISTINCT date), 0) as total_days,
	       COALESCE(AVG(mood_score), 0) as average_mood
	FROM journal_entries
	WHERE user_id = $1
	`

	stat := &journal.DaysStat{Period: "all_time"}
	err := s.db.QueryRow(ctx, query, userID).Scan(&stat.DaysJournaled, &stat.TotalDays, &stat.AverageMood)
	if err != nil {
		return nil, fmt.Errorf("failed to get all time stats: %w", err)
	}

	return stat, nil
}

// AverageMood over the last n days, 0 when there are no entries.
func (s *JournalService) AverageMood(ctx context.Context, userID uuid.UUID, days int) (float64, error) {
	var avg float64
	err := s.db.QueryRow(ctx, `
	SELECT COALESCE(AVG(mood_score), 0)
	FROM journal_entries
	WHERE user_id = $1 AND date >= CURRENT_DATE - $2::int
	`, userID, days).Scan(&avg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get average mood: %w", err)
	}
	return avg, nil
}

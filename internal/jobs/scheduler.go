package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"journeysAPI/services"
)

// Scheduler owns the periodic maintenance passes: the nightly streak gap
// sweep and the weekly-inactivity XP decay. Both jobs are idempotent, so a
// double fire costs nothing.
type Scheduler struct {
	cron    *cron.Cron
	streaks *services.StreakService
	levels  *services.LevelService
}

func NewScheduler(streaks *services.StreakService, levels *services.LevelService) *Scheduler {
	// Jobs run on UTC because streak dates are UTC calendar dates.
	c := cron.New(cron.WithLocation(time.UTC))

	return &Scheduler{
		cron:    c,
		streaks: streaks,
		levels:  levels,
	}
}

func (s *Scheduler) Start() {
	// 00:05 UTC, a few minutes past the date flip so "yesterday" is settled.
	s.cron.AddFunc("5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		swept, err := s.streaks.SweepBroken(ctx, time.Now())
		if err != nil {
			log.Printf("[CRON] streak gap sweep failed: %v", err)
			return
		}
		log.Printf("[CRON] streak gap sweep reset %d streaks", swept)
	})

	s.cron.AddFunc("15 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		decayed, err := s.levels.ApplyIdleDecay(ctx)
		if err != nil {
			log.Printf("[CRON] idle XP decay failed: %v", err)
			return
		}
		log.Printf("[CRON] idle XP decay touched %d users", decayed)
	})

	s.cron.Start()
	log.Println("Job scheduler started (UTC)")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Job scheduler stopped")
}

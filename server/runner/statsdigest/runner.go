// Package statsdigest periodically logs a study-load digest for every active
// member. The digest gives operators a pulse on scheduling health without a
// metrics stack: backlog sizes and streaks show up in the structured logs.
package statsdigest

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cardloop/cardloop/server/service/dashboard"
	"github.com/cardloop/cardloop/store"
)

// DigestSchedule is the cron expression for the digest job.
const DigestSchedule = "@hourly"

type Runner struct {
	store            *store.Store
	dashboardService dashboard.Service
	location         *time.Location

	c *cron.Cron
}

// NewRunner creates a stats digest runner.
func NewRunner(store *store.Store, dashboardService dashboard.Service, location *time.Location) *Runner {
	return &Runner{
		store:            store,
		dashboardService: dashboardService,
		location:         location,
	}
}

// Run starts the cron scheduler and blocks until the context is canceled.
func (r *Runner) Run(ctx context.Context) {
	r.c = cron.New(cron.WithLocation(r.location))
	if _, err := r.c.AddFunc(DigestSchedule, func() {
		r.RunOnce(ctx)
	}); err != nil {
		slog.Error("failed to schedule stats digest", slog.Any("error", err))
		return
	}
	r.c.Start()

	<-ctx.Done()
	stopCtx := r.c.Stop()
	<-stopCtx.Done()
	slog.Info("stats digest runner stopped")
}

// RunOnce computes and logs one digest pass (for manual trigger).
func (r *Runner) RunOnce(ctx context.Context) {
	normalStatus := store.Normal
	members, err := r.store.ListMembers(ctx, &store.FindMember{RowStatus: &normalStatus})
	if err != nil {
		slog.Error("stats digest failed to list members", slog.Any("error", err))
		return
	}

	now := time.Now().In(r.location)
	for _, member := range members {
		dash, err := r.dashboardService.GetDashboard(ctx, member.ID, now)
		if err != nil {
			slog.Warn("stats digest failed for member",
				slog.Int("member_id", int(member.ID)),
				slog.Any("error", err))
			continue
		}

		slog.Info("study digest",
			slog.Int("member_id", int(member.ID)),
			slog.Int("overdue", dash.Stats.OverdueCount),
			slog.Int("due_today", dash.Stats.TodayCount),
			slog.Int("total_active", dash.Stats.TotalActiveCards),
			slog.Int("completed_today", dash.Stats.CompletedTodayCount),
			slog.Int("streak_days", dash.Stats.CurrentStreakDays),
			slog.Bool("should_study", dash.Recommendation.ShouldStudyToday))
	}
}

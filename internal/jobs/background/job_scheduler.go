package background

import (
	"context"
	"log"
	"time"

	"housebill/internal/analytics"
	"housebill/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring background jobs: the dashboard stats
// refresh and the subscription expiry scan. The job map is written only at
// construction time.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
	expirySvc    *jobs.ExpiryAlertService
	jobs         map[string]gocron.Job
}

func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, expirySvc *jobs.ExpiryAlertService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		expirySvc:    expirySvc,
		jobs:         make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Stats refresh keeps the cached dashboard snapshot warm between
	// mutations.
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshStats, context.Background()),
		gocron.WithName("stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stats refresh job: %v", err)
	} else {
		js.jobs["stats-refresh"] = statsJob
	}

	// One expiry scan per day is enough; status changes only at midnight.
	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.expirySvc.ScheduledExpiryCheck, context.Background()),
		gocron.WithName("expiry-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create expiry alerts job: %v", err)
	} else {
		js.jobs["expiry-alerts"] = expiryJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) refreshStats(ctx context.Context) error {
	if err := js.analyticsSvc.Refresh(ctx); err != nil {
		log.Printf("Stats refresh failed: %v", err)
		return err
	}
	return nil
}

// GetJobStatus reports registered job names for the detailed health payload.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       names,
	}
}

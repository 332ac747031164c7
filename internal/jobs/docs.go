// Package jobs provides scheduled background tasks for the meal ordering
// service, built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// DraftExpiryJob removes drafts that nobody touched for longer than the
// configured TTL, so a user who walks away mid-conversation starts over
// from idle next time.
//
// # Usage
//
//	expiry := jobs.NewDraftExpiryJob(expireDraftsHandler, metrics, 24*time.Hour, "", logger)
//	jobManager := jobs.NewJobManager(expiry)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed sweeps are logged and retried on the next tick.
package jobs

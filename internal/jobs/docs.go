// Package jobs runs scheduled background work for the fulfillment service
// using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// AutoAssignJob assigns shipping attempts that stayed PENDING and unclaimed
// longer than the configured age to active staff, spreading them over the
// staff directory by current load. By default it runs hourly and picks up
// attempts older than 24 hours.
//
// # Usage
//
//	autoAssign := jobs.NewAutoAssignJob(handler, jobs.AutoAssignConfig{
//		Schedule:  "@hourly",
//		OlderThan: 24 * time.Hour,
//		Limit:     100,
//	}, logger)
//	jobManager := jobs.NewJobManager(autoAssign, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty staff directory is logged as a warning. Attempts lost to a
// concurrent claim are counted as skipped by the handler. Any other failure is
// logged and retried on the next tick; a pass never overlaps the previous one.
package jobs

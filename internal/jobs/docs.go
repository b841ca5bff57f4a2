// Package jobs provides scheduled background tasks for the planner service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PlanningJob runs a planning cycle for every shop on a schedule with a
// seconds field, by default at the start of every minute. Shops are planned
// concurrently, a bounded number at a time, each in its own transaction.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	planning := jobs.NewPlanningJob(shopRepo, planDeliveriesHandler, "0 */5 * * * *", logger)
//	jobManager := jobs.NewJobManager(planning)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A shop without orders or couriers is skipped with a warning
//   - A failing shop is logged and does not stop the others
//   - Failed phases inside a plan are logged with their scope
//   - A failed job start stops the jobs already started
package jobs

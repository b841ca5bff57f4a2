package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"deliveryplanner/internal/core/application/usecases/commands"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/core/domain/services"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// DefaultPlanningSchedule runs a planning cycle at the start of every minute.
const DefaultPlanningSchedule = "0 * * * * *"

// DefaultShopConcurrency bounds how many shops are planned at once.
const DefaultShopConcurrency = 4

// ShopLister lists the shops to plan.
type ShopLister interface {
	GetAll(ctx context.Context) ([]*shop.Shop, error)
}

// DeliveryPlanner runs one planning cycle for one shop.
// commands.PlanDeliveriesCommandHandler implements it.
type DeliveryPlanner interface {
	Handle(ctx context.Context, cmd commands.PlanDeliveriesCommand) (*plan.Plan, error)
}

// PlanningJob plans every shop on a cron schedule. A run that is still going
// when the next one is due makes the next one skip.
type PlanningJob struct {
	shops       ShopLister
	planner     DeliveryPlanner
	schedule    string
	concurrency int
	now         func() time.Time
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPlanningJob creates the job. An empty schedule means
// DefaultPlanningSchedule; the schedule has a seconds field.
func NewPlanningJob(shops ShopLister, planner DeliveryPlanner, schedule string, logger *slog.Logger) *PlanningJob {
	if schedule == "" {
		schedule = DefaultPlanningSchedule
	}
	return &PlanningJob{
		shops:       shops,
		planner:     planner,
		schedule:    schedule,
		concurrency: DefaultShopConcurrency,
		now:         time.Now,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:      logger.With("component", "planning_job"),
	}
}

// Start schedules the job.
func (j *PlanningJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Planning job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid planning schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Planning job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running cycle to finish.
func (j *PlanningJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Planning job stopped")
}

// RunOnce plans every shop with the same reference time. A shop that fails is
// logged and does not stop the others; the error lists every failed shop.
func (j *PlanningJob) RunOnce(ctx context.Context) error {
	shops, err := j.shops.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list shops: %w", err)
	}

	ref := j.now()
	failures := make([]error, len(shops))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for i, s := range shops {
		g.Go(func() error {
			failures[i] = j.planShop(gctx, s, ref)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(failures...)
}

func (j *PlanningJob) planShop(ctx context.Context, s *shop.Shop, ref time.Time) error {
	cmd, err := commands.NewPlanDeliveriesCommand(s.ID(), ref)
	if err != nil {
		return err
	}

	p, err := j.planner.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPlanRequest) {
			j.logger.WarnContext(ctx, "Shop skipped", "shop_id", s.ID().String(), "error", err)
			return nil
		}
		j.logger.ErrorContext(ctx, "Shop planning failed", "shop_id", s.ID().String(), "error", err)
		return fmt.Errorf("shop %s: %w", s.ID(), err)
	}

	for _, f := range p.Failures {
		j.logger.ErrorContext(ctx, "Planning phase failed",
			"shop_id", s.ID().String(),
			"phase", string(f.Phase),
			"scope", f.Scope,
			"orders", len(f.Orders),
			"error", f.Err,
		)
	}
	j.logger.DebugContext(ctx, "Shop planned",
		"shop_id", s.ID().String(),
		"shipped_orders", p.ShippedOrders(),
		"rejected_orders", len(p.Rejected()),
	)
	return nil
}

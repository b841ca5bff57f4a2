package planrepo

import (
	"context"
	"errors"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/plan"

	"gorm.io/gorm"
)

var errPlanIsRequired = errors.New("plan is required")

// GormPlanRepository implements ports.PlanRepository using GORM.
type GormPlanRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPlanRepository creates a repository on db.
func NewGormPlanRepository(db *gorm.DB, tracker aggregateTracker) *GormPlanRepository {
	return &GormPlanRepository{db: db, tracker: tracker, now: time.Now}
}

// Save inserts the plan header and its routes in one statement batch.
func (r *GormPlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return errPlanIsRequired
	}

	dto := fromDomain(p, r.now().UTC())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(p.ID, p)
	return nil
}

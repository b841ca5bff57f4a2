package ports

import (
	"context"

	"deliveryplanner/internal/core/domain/model/plan"
)

// PlanRepository stores the routes of planning runs. Plans are write-only from
// the core's point of view; reads go through queries.
type PlanRepository interface {
	// Save persists the plan's assembled and receipted routes.
	Save(ctx context.Context, p *plan.Plan) error
}

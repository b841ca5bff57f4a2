// Package queries contains read-side operations served straight from the
// database, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/pkg/guard"
)

var (
	ErrGetUndeliveredOrdersQueryIsNotConstructed = errors.New(
		"GetUndeliveredOrdersQuery must be created via NewGetUndeliveredOrdersQuery constructor",
	)
)

// GetUndeliveredOrdersQuery lists a shop's open orders the last planning run
// could not put on a route, with the reason it recorded.
//
// Example:
//
//	query, _ := NewGetUndeliveredOrdersQuery(shopID)
//	handler := NewGetUndeliveredOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get undelivered orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("Order %s: %s\n", o.ID, o.Rejection)
//	}
type GetUndeliveredOrdersQuery struct {
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUndeliveredOrdersQuery creates a query for one shop.
func NewGetUndeliveredOrdersQuery(shopID kernel.UUID) (GetUndeliveredOrdersQuery, error) {
	if err := shopID.Validate(); err != nil {
		return GetUndeliveredOrdersQuery{}, err
	}
	return GetUndeliveredOrdersQuery{shopID: shopID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUndeliveredOrdersQueryIsNotConstructed if validation fails.
func (q GetUndeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredOrdersQueryIsNotConstructed)
}

func (q GetUndeliveredOrdersQuery) ShopID() kernel.UUID {
	return q.shopID
}

// GetUndeliveredOrdersQueryResponse is one rejected order.
type GetUndeliveredOrdersQueryResponse struct {
	ID        kernel.UUID
	Location  kernel.Location
	Deadline  time.Time
	Status    order.Status
	Rejection order.RejectionReason
}

// Package postgres provides the GORM-based Unit of Work and schema migration
// for shops, orders, couriers and plans.
//
// A planning run loads the shop, its plannable orders and couriers, then
// writes order rejections and the plan inside one transaction:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    if r := recover(); r != nil {
//	        _ = uow.Rollback(ctx)
//	        panic(r)
//	    }
//	}()
//
//	orders, err := uow.OrderRepository().GetPlannable(ctx, shopID)
//	if err != nil {
//	    _ = uow.Rollback(ctx)
//	    return err
//	}
//	// ... plan, update orders, save plan ...
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds one transaction; concurrent planning runs
// must create their own.
package postgres

import (
	"context"

	"deliveryplanner/internal/adapters/out/postgres/courierrepo"
	"deliveryplanner/internal/adapters/out/postgres/orderrepo"
	"deliveryplanner/internal/adapters/out/postgres/planrepo"
	"deliveryplanner/internal/adapters/out/postgres/shoprepo"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the adapters use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shoprepo.ShopDTO{},
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&planrepo.PlanDTO{},
		&planrepo.PlanRouteDTO{},
	)
}

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across repositories and
// records the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's changes permanent and closes it.
// Returns gorm.ErrInvalidTransaction without an open transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes and closes it.
// Returns gorm.ErrInvalidTransaction without an open transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ShopRepository returns a shop repository on the open transaction, or on the
// connection pool when none is open.
func (uow *GormUnitOfWork) ShopRepository() ports.ShopRepository {
	return shoprepo.NewGormShopRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository on the open transaction, or on
// the connection pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// CourierRepository returns a courier repository on the open transaction, or
// on the connection pool when none is open.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// PlanRepository returns a plan repository on the open transaction, or on the
// connection pool when none is open.
func (uow *GormUnitOfWork) PlanRepository() ports.PlanRepository {
	return planrepo.NewGormPlanRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add, Update or Save.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs returns the identifiers of tracked aggregates in write order.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(uow.trackedAggregates))
	for i, t := range uow.trackedAggregates {
		ids[i] = t.ID
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

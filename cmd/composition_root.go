package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "deliveryplanner/internal/adapters/in/http"
	"deliveryplanner/internal/adapters/out/geocache"
	"deliveryplanner/internal/adapters/out/postgres"
	"deliveryplanner/internal/core/application/usecases/commands"
	"deliveryplanner/internal/core/application/usecases/queries"
	"deliveryplanner/internal/core/domain/services"
	"deliveryplanner/internal/core/ports"
	"deliveryplanner/internal/jobs"
	"deliveryplanner/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	geoCache   ports.GeoCache
	planner    *services.PhaseOrchestrator
	logger     *slog.Logger
	closers    []func() error
}

// NewCompositionRoot wires the geo cache and the planner. With REDIS_URL unset
// the distance matrices live in process memory.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	estimator := geocache.NewEstimator()
	if cfg.RedisURL == "" {
		logger.InfoContext(ctx, "Using in-memory geo cache")
		c.geoCache = geocache.NewMemoryCache(estimator, cfg.Planner.GeoCacheTTL)
	} else {
		cache, err := geocache.NewRedisCacheFromURL(cfg.RedisURL, estimator, cfg.Planner.GeoCacheTTL)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err = cache.Ping(pingCtx); err != nil {
			_ = cache.Close()
			return nil, fmt.Errorf("redis geo cache: %w", err)
		}
		c.geoCache = cache
		c.closers = append(c.closers, cache.Close)
	}

	opts, err := cfg.Planner.PlannerOptions()
	if err != nil {
		return nil, err
	}
	c.planner, err = services.NewPlanner(c.geoCache, opts, logger)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Close releases the connections the root opened.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) CreateCreateShopCommandHandler() commands.CreateShopCommandHandler {
	var f commands.ShopUoWFactory = FuncShopUoWFactory(func() commands.ShopUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShopCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssembleOrderCommandHandler() commands.AssembleOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssembleOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierStatusCommandHandler() commands.SetCourierStatusCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierStatusCommandHandler(f)
}

func (c *CompositionRoot) CreatePlanDeliveriesCommandHandler() commands.PlanDeliveriesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanDeliveriesCommandHandler(f, c.planner, metrics.PlanRecorder{}, c.logger)
}

func (c *CompositionRoot) CreateGetShopPlanQueryHandler() queries.GetShopPlanQueryHandler {
	return queries.NewGetShopPlanQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUndeliveredOrdersQueryHandler() queries.GetUndeliveredOrdersQueryHandler {
	return queries.NewGetUndeliveredOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShopCouriersQueryHandler() queries.GetShopCouriersQueryHandler {
	return queries.NewGetShopCouriersQueryHandler(c.gormDB)
}

// CreatePlanningJob plans every shop on PLANNING_CRON. Shops are listed
// outside any transaction.
func (c *CompositionRoot) CreatePlanningJob() *jobs.PlanningJob {
	return jobs.NewPlanningJob(
		c.uowFactory.Create().ShopRepository(),
		c.CreatePlanDeliveriesCommandHandler(),
		c.cfg.PlanningCron,
		c.logger,
	)
}

// CreateRouter builds the HTTP surface over every handler.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateShop:           c.CreateCreateShopCommandHandler(),
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		AssembleOrder:        c.CreateAssembleOrderCommandHandler(),
		CreateCourier:        c.CreateCreateCourierCommandHandler(),
		SetCourierStatus:     c.CreateSetCourierStatusCommandHandler(),
		PlanDeliveries:       c.CreatePlanDeliveriesCommandHandler(),
		GetShopPlan:          c.CreateGetShopPlanQueryHandler(),
		GetUndeliveredOrders: c.CreateGetUndeliveredOrdersQueryHandler(),
		GetShopCouriers:      c.CreateGetShopCouriersQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, httpin.RouterOptions{
		PlanRatePerSecond: c.cfg.Planner.PlanRatePerSecond,
		PlanBurst:         c.cfg.Planner.PlanBurst,
	})
}

type FuncShopUoWFactory func() commands.ShopUoW

func (f FuncShopUoWFactory) Create() commands.ShopUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

package http

import (
	"net/http"
	"time"

	"deliveryplanner/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// RouterOptions tune the HTTP surface.
type RouterOptions struct {
	// PlanRatePerSecond limits manual planning runs per shop. Zero disables the limit.
	PlanRatePerSecond float64
	// PlanBurst is the number of runs a shop may start back to back.
	PlanBurst int
}

// NewRouter builds the echo instance with every route registered.
//
//	GET  /health
//	GET  /metrics
//	GET  /swagger/*
//	POST /api/v1/shops
//	POST /api/v1/shops/:shopId/orders
//	POST /api/v1/shops/:shopId/plan
//	GET  /api/v1/shops/:shopId/plan
//	GET  /api/v1/shops/:shopId/undelivered
//	GET  /api/v1/shops/:shopId/couriers
//	POST /api/v1/orders/:orderId/assemble
//	POST /api/v1/couriers
//	PUT  /api/v1/couriers/:courierId/status
//
// Requests under /api/v1 are validated against the API description first.
func NewRouter(s *Server, opts RouterOptions) (*echo.Echo, error) {
	validator, err := RequestValidator()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(Metrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	api.POST("/shops", s.CreateShop)
	api.POST("/shops/:shopId/orders", s.CreateOrder)
	api.POST("/shops/:shopId/plan", s.PlanDeliveries, planRateLimiter(opts)...)
	api.GET("/shops/:shopId/plan", s.GetShopPlan)
	api.GET("/shops/:shopId/undelivered", s.GetUndeliveredOrders)
	api.GET("/shops/:shopId/couriers", s.GetShopCouriers)
	api.POST("/orders/:orderId/assemble", s.AssembleOrder)
	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:courierId/status", s.SetCourierStatus)

	return e, nil
}

// Metrics records every request in the HTTP collectors, labelled by route
// template rather than raw path.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			metrics.ObserveHTTP(c.Request().Method, path, c.Response().Status, time.Since(start).Seconds())
			return nil
		}
	}
}

// planRateLimiter throttles manual planning runs per shop.
func planRateLimiter(opts RouterOptions) []echo.MiddlewareFunc {
	if opts.PlanRatePerSecond <= 0 {
		return nil
	}
	burst := opts.PlanBurst
	if burst < 1 {
		burst = 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(opts.PlanRatePerSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.Param("shopId"), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "Cannot identify shop"})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, Error{
				Code:    http.StatusTooManyRequests,
				Message: "Planning was requested too often, retry later",
			})
		},
	})}
}

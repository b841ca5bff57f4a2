package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"deliveryplanner/internal/core/application/usecases/commands"
	"deliveryplanner/internal/core/application/usecases/queries"
	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/plan"

	"github.com/labstack/echo/v4"
)

type CreateShopHandler interface {
	Handle(ctx context.Context, cmd commands.CreateShopCommand) error
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type AssembleOrderHandler interface {
	Handle(ctx context.Context, cmd commands.AssembleOrderCommand) error
}

type CreateCourierHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
}

type SetCourierStatusHandler interface {
	Handle(ctx context.Context, cmd commands.SetCourierStatusCommand) error
}

type PlanDeliveriesHandler interface {
	Handle(ctx context.Context, cmd commands.PlanDeliveriesCommand) (*plan.Plan, error)
}

type GetShopPlanHandler interface {
	Handle(ctx context.Context, query queries.GetShopPlanQuery) (*queries.GetShopPlanQueryResponse, error)
}

type GetUndeliveredOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetUndeliveredOrdersQuery) ([]queries.GetUndeliveredOrdersQueryResponse, error)
}

type GetShopCouriersHandler interface {
	Handle(ctx context.Context, query queries.GetShopCouriersQuery) ([]queries.GetShopCouriersQueryResponse, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateShop       CreateShopHandler
	CreateOrder      CreateOrderHandler
	AssembleOrder    AssembleOrderHandler
	CreateCourier    CreateCourierHandler
	SetCourierStatus SetCourierStatusHandler
	PlanDeliveries   PlanDeliveriesHandler

	GetShopPlan          GetShopPlanHandler
	GetUndeliveredOrders GetUndeliveredOrdersHandler
	GetShopCouriers      GetShopCouriersHandler
}

// Server translates HTTP requests into commands and queries and their results
// into JSON.
type Server struct {
	handlers Handlers
	now      func() time.Time
	logger   *slog.Logger
}

// NewServer creates a server. A nil logger discards output.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		handlers: handlers,
		now:      time.Now,
		logger:   logger.With("component", "http"),
	}
}

// CreateShop handles POST /api/v1/shops.
func (s *Server) CreateShop(ctx echo.Context) error {
	var body NewShop
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}
	hours, err := parseDailyWindow(body.OpensAt, body.ClosesAt)
	if err != nil {
		return badRequest(ctx, "Invalid working hours: "+err.Error())
	}

	shopID := kernel.NewUUID()
	cmd, err := commands.NewCreateShopCommand(shopID, body.Name, location, hours)
	if err != nil {
		return badRequest(ctx, "Invalid shop data: "+err.Error())
	}

	if err = s.handlers.CreateShop.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create shop")
	}

	return ctx.JSON(http.StatusCreated, Created{ID: shopID.String()})
}

// CreateOrder handles POST /api/v1/shops/{shopId}/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	shopID, err := bindUUIDParam(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}
	window, err := kernel.NewInterval(body.WindowFrom, body.WindowTo)
	if err != nil {
		return badRequest(ctx, "Invalid delivery window: "+err.Error())
	}
	vehicleTypes, err := parseVehicleTypes(body.VehicleTypes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, shopID, location, body.Weight, window, vehicleTypes)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.String()})
}

// AssembleOrder handles POST /api/v1/orders/{orderId}/assemble.
func (s *Server) AssembleOrder(ctx echo.Context) error {
	orderID, err := bindUUIDParam(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssembleOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.AssembleOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to assemble order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body NewCourier
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleType, err := kernel.ParseVehicleType(body.VehicleType)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	tariff := courier.TariffParams{
		MaxWeight:     body.Tariff.MaxWeight,
		MaxDistanceKm: body.Tariff.MaxDistanceKm,
		ServiceTime:   time.Duration(body.Tariff.ServiceTimeSeconds) * time.Second,
		BaseCost:      body.Tariff.BaseCost,
		CostPerKm:     body.Tariff.CostPerKm,
		CostPerHour:   body.Tariff.CostPerHour,
	}

	courierID := kernel.NewUUID()
	var cmd commands.CreateCourierCommand
	if body.IsTaxi {
		cmd, err = commands.NewCreateTaxiCommand(courierID, body.Name, vehicleType, tariff)
	} else {
		cmd, err = s.shopCourierCommand(courierID, body, vehicleType, tariff)
	}
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err = s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create courier")
	}

	return ctx.JSON(http.StatusCreated, Created{ID: courierID.String()})
}

func (s *Server) shopCourierCommand(
	courierID kernel.UUID,
	body NewCourier,
	vehicleType kernel.VehicleType,
	tariff courier.TariffParams,
) (commands.CreateCourierCommand, error) {
	shopID, err := kernel.UUIDFromString(body.ShopID)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}
	shift, err := parseDailyWindow(body.ShiftStart, body.ShiftEnd)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}
	return commands.NewCreateCourierCommand(courierID, body.Name, vehicleType, shopID, shift, tariff)
}

// SetCourierStatus handles PUT /api/v1/couriers/{courierId}/status.
func (s *Server) SetCourierStatus(ctx echo.Context) error {
	courierID, err := bindUUIDParam(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body CourierStatus
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	status, err := courier.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetCourierStatusCommand(courierID, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.SetCourierStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to update courier status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlanDeliveries handles POST /api/v1/shops/{shopId}/plan: plans the shop now
// and returns the fresh plan.
func (s *Server) PlanDeliveries(ctx echo.Context) error {
	shopID, err := bindUUIDParam(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewPlanDeliveriesCommand(shopID, s.now())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	p, err := s.handlers.PlanDeliveries.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to plan deliveries")
	}

	return ctx.JSON(http.StatusOK, planFromDomain(p))
}

// GetShopPlan handles GET /api/v1/shops/{shopId}/plan.
func (s *Server) GetShopPlan(ctx echo.Context) error {
	shopID, err := bindUUIDParam(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetShopPlanQuery(shopID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	latest, err := s.handlers.GetShopPlan.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve plan")
	}

	return ctx.JSON(http.StatusOK, planFromView(latest))
}

// GetUndeliveredOrders handles GET /api/v1/shops/{shopId}/undelivered.
func (s *Server) GetUndeliveredOrders(ctx echo.Context) error {
	shopID, err := bindUUIDParam(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetUndeliveredOrdersQuery(shopID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.handlers.GetUndeliveredOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]RejectedOrder, len(orders))
	for i, o := range orders {
		response[i] = RejectedOrder{
			ID: o.ID.String(),
			Location: Location{
				Latitude:  o.Location.Latitude(),
				Longitude: o.Location.Longitude(),
			},
			Deadline:  o.Deadline,
			Status:    o.Status.String(),
			Rejection: o.Rejection.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShopCouriers handles GET /api/v1/shops/{shopId}/couriers.
func (s *Server) GetShopCouriers(ctx echo.Context) error {
	shopID, err := bindUUIDParam(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetShopCouriersQuery(shopID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	couriers, err := s.handlers.GetShopCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve couriers")
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{
			ID:          c.ID.String(),
			Name:        c.Name,
			VehicleType: c.VehicleType.String(),
			IsTaxi:      c.IsTaxi,
			Status:      c.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

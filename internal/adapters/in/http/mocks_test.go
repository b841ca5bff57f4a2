package http

import (
	"context"

	"deliveryplanner/internal/core/application/usecases/commands"
	"deliveryplanner/internal/core/application/usecases/queries"
	"deliveryplanner/internal/core/domain/model/plan"

	"github.com/stretchr/testify/mock"
)

type MockCreateShopHandler struct{ mock.Mock }

func (m *MockCreateShopHandler) Handle(ctx context.Context, cmd commands.CreateShopCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAssembleOrderHandler struct{ mock.Mock }

func (m *MockAssembleOrderHandler) Handle(ctx context.Context, cmd commands.AssembleOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCreateCourierHandler struct{ mock.Mock }

func (m *MockCreateCourierHandler) Handle(ctx context.Context, cmd commands.CreateCourierCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSetCourierStatusHandler struct{ mock.Mock }

func (m *MockSetCourierStatusHandler) Handle(ctx context.Context, cmd commands.SetCourierStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPlanDeliveriesHandler struct{ mock.Mock }

func (m *MockPlanDeliveriesHandler) Handle(ctx context.Context, cmd commands.PlanDeliveriesCommand) (*plan.Plan, error) {
	args := m.Called(ctx, cmd)
	p, _ := args.Get(0).(*plan.Plan)
	return p, args.Error(1)
}

type MockGetShopPlanHandler struct{ mock.Mock }

func (m *MockGetShopPlanHandler) Handle(
	ctx context.Context,
	query queries.GetShopPlanQuery,
) (*queries.GetShopPlanQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(*queries.GetShopPlanQueryResponse)
	return r, args.Error(1)
}

type MockGetUndeliveredOrdersHandler struct{ mock.Mock }

func (m *MockGetUndeliveredOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetUndeliveredOrdersQuery,
) ([]queries.GetUndeliveredOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).([]queries.GetUndeliveredOrdersQueryResponse)
	return r, args.Error(1)
}

type MockGetShopCouriersHandler struct{ mock.Mock }

func (m *MockGetShopCouriersHandler) Handle(
	ctx context.Context,
	query queries.GetShopCouriersQuery,
) ([]queries.GetShopCouriersQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).([]queries.GetShopCouriersQueryResponse)
	return r, args.Error(1)
}

// serverMocks holds one mock per use case so each test sets up only the ones
// it calls.
type serverMocks struct {
	createShop       *MockCreateShopHandler
	createOrder      *MockCreateOrderHandler
	assembleOrder    *MockAssembleOrderHandler
	createCourier    *MockCreateCourierHandler
	setCourierStatus *MockSetCourierStatusHandler
	planDeliveries   *MockPlanDeliveriesHandler
	getShopPlan      *MockGetShopPlanHandler
	getUndelivered   *MockGetUndeliveredOrdersHandler
	getShopCouriers  *MockGetShopCouriersHandler
}

func newServerMocks() *serverMocks {
	return &serverMocks{
		createShop:       &MockCreateShopHandler{},
		createOrder:      &MockCreateOrderHandler{},
		assembleOrder:    &MockAssembleOrderHandler{},
		createCourier:    &MockCreateCourierHandler{},
		setCourierStatus: &MockSetCourierStatusHandler{},
		planDeliveries:   &MockPlanDeliveriesHandler{},
		getShopPlan:      &MockGetShopPlanHandler{},
		getUndelivered:   &MockGetUndeliveredOrdersHandler{},
		getShopCouriers:  &MockGetShopCouriersHandler{},
	}
}

func (m *serverMocks) handlers() Handlers {
	return Handlers{
		CreateShop:           m.createShop,
		CreateOrder:          m.createOrder,
		AssembleOrder:        m.assembleOrder,
		CreateCourier:        m.createCourier,
		SetCourierStatus:     m.setCourierStatus,
		PlanDeliveries:       m.planDeliveries,
		GetShopPlan:          m.getShopPlan,
		GetUndeliveredOrders: m.getUndelivered,
		GetShopCouriers:      m.getShopCouriers,
	}
}

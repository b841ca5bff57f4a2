package commands_test

import (
	"context"
	"time"

	"deliveryplanner/internal/core/application/usecases/commands"
	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShopRepository struct{ mock.Mock }

func (m *MockShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shop.Shop)
	return s, args.Error(1)
}

func (m *MockShopRepository) GetAll(ctx context.Context) ([]*shop.Shop, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]*shop.Shop)
	return shops, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetPlannable(ctx context.Context, shopID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, shopID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetAvailableFor(ctx context.Context, shopID kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, shopID)
	couriers, _ := args.Get(0).([]*courier.Courier)
	return couriers, args.Error(1)
}

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShopRepository() ports.ShopRepository {
	args := m.Called()
	return args.Get(0).(ports.ShopRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}

type MockShopUoWFactory struct{ mock.Mock }

func (m *MockShopUoWFactory) Create() commands.ShopUoW {
	args := m.Called()
	return args.Get(0).(commands.ShopUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPlanner struct{ mock.Mock }

func (m *MockPlanner) Plan(
	ctx context.Context,
	s *shop.Shop,
	orders []*order.Order,
	couriers []*courier.Courier,
	referenceTime time.Time,
) (*plan.Plan, error) {
	args := m.Called(ctx, s, orders, couriers, referenceTime)
	p, _ := args.Get(0).(*plan.Plan)
	return p, args.Error(1)
}

type MockPlanObserver struct{ mock.Mock }

func (m *MockPlanObserver) ObservePlan(p *plan.Plan) {
	m.Called(p)
}

func (m *MockPlanObserver) ObservePlanError() {
	m.Called()
}

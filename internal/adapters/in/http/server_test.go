package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deliveryplanner/internal/core/application/usecases/commands"
	"deliveryplanner/internal/core/application/usecases/queries"
	"deliveryplanner/internal/core/domain/model/courier"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/pkg/errs"
	"deliveryplanner/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var referenceTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, m *serverMocks, opts RouterOptions) *echo.Echo {
	t.Helper()
	s := NewServer(m.handlers(), nil)
	s.now = func() time.Time { return referenceTime }
	e, err := NewRouter(s, opts)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	e := newTestRouter(t, newServerMocks(), RouterOptions{})

	rec := do(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.RegisterDefault()
	e := newTestRouter(t, newServerMocks(), RouterOptions{})
	do(e, http.MethodGet, "/health", "")

	rec := do(e, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"}`)
}

func TestCreateShop(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		m := newServerMocks()
		m.createShop.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateShopCommand) bool {
			return cmd.Name() == "Central" &&
				cmd.WorkingHours().Start() == 8*time.Hour &&
				cmd.WorkingHours().End() == 24*time.Hour
		})).Return(nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops",
			`{"name":"Central","location":{"latitude":55.75,"longitude":37.6},"opensAt":"08:00","closesAt":"24:00"}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		created := decode[Created](t, rec)
		_, err := kernel.UUIDFromString(created.ID)
		require.NoError(t, err)
		m.createShop.AssertExpectations(t)
	})

	t.Run("invalid hours", func(t *testing.T) {
		m := newServerMocks()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops",
			`{"name":"Central","location":{"latitude":55.75,"longitude":37.6},"opensAt":"8am","closesAt":"22:00"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.createShop.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		m := newServerMocks()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops",
			`{"location":{"latitude":55.75,"longitude":37.6},"opensAt":"08:00","closesAt":"22:00"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateOrder(t *testing.T) {
	shopID := kernel.NewUUID()
	body := `{"location":{"latitude":55.76,"longitude":37.6},"weight":2.5,` +
		`"windowFrom":"2024-05-10T12:00:00Z","windowTo":"2024-05-10T13:00:00Z","vehicleTypes":["bicycle","car"]}`

	t.Run("created", func(t *testing.T) {
		m := newServerMocks()
		m.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.ShopID().IsEqual(shopID) &&
				cmd.Weight() == 2.5 &&
				cmd.Window().To().Equal(referenceTime.Add(time.Hour)) &&
				assert.ObjectsAreEqual([]kernel.VehicleType{kernel.Bicycle, kernel.Car}, cmd.VehicleTypes())
		})).Return(nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops/"+shopID.String()+"/orders", body)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		m.createOrder.AssertExpectations(t)
	})

	t.Run("unknown shop", func(t *testing.T) {
		m := newServerMocks()
		m.createOrder.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("shop", shopID.String())).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops/"+shopID.String()+"/orders", body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed shop id", func(t *testing.T) {
		m := newServerMocks()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops/not-a-uuid/orders", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[Error](t, rec).Message, "shopId")
	})

	t.Run("unknown vehicle type", func(t *testing.T) {
		m := newServerMocks()
		bad := strings.Replace(body, `"car"`, `"rocket"`, 1)

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops/"+shopID.String()+"/orders", bad)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAssembleOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	target := "/api/v1/orders/" + orderID.String() + "/assemble"

	t.Run("assembled", func(t *testing.T) {
		m := newServerMocks()
		m.assembleOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssembleOrderCommand) bool {
			return cmd.OrderID().IsEqual(orderID)
		})).Return(nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, target, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		m.assembleOrder.AssertExpectations(t)
	})

	t.Run("wrong status", func(t *testing.T) {
		m := newServerMocks()
		m.assembleOrder.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewValueIsInvalidError("status is invalid")).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, target, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		m := newServerMocks()
		m.assembleOrder.On("Handle", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, target, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to assemble order", decode[Error](t, rec).Message)
	})
}

func TestCreateCourier(t *testing.T) {
	tariff := `"tariff":{"maxWeight":10,"maxDistanceKm":15,"serviceTimeSeconds":120,"baseCost":50,"costPerKm":10,"costPerHour":300}`

	t.Run("shop courier", func(t *testing.T) {
		shopID := kernel.NewUUID()
		m := newServerMocks()
		m.createCourier.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateCourierCommand) bool {
			return !cmd.IsTaxi() &&
				cmd.ShopID().IsEqual(shopID) &&
				cmd.VehicleType() == kernel.Bicycle &&
				cmd.Work().Start() == 9*time.Hour &&
				cmd.Tariff().ServiceTime == 2*time.Minute
		})).Return(nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/couriers",
			`{"name":"Anna","vehicleType":"bicycle","shopId":"`+shopID.String()+`","shiftStart":"09:00","shiftEnd":"18:00",`+tariff+`}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		m.createCourier.AssertExpectations(t)
	})

	t.Run("taxi", func(t *testing.T) {
		m := newServerMocks()
		m.createCourier.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateCourierCommand) bool {
			return cmd.IsTaxi() && cmd.VehicleType() == kernel.Car
		})).Return(nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/couriers",
			`{"name":"Taxi","vehicleType":"car","isTaxi":true,`+tariff+`}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		m.createCourier.AssertExpectations(t)
	})

	t.Run("shop courier without shop", func(t *testing.T) {
		m := newServerMocks()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/couriers",
			`{"name":"Anna","vehicleType":"bicycle","shiftStart":"09:00","shiftEnd":"18:00",`+tariff+`}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.createCourier.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestSetCourierStatus(t *testing.T) {
	courierID := kernel.NewUUID()
	target := "/api/v1/couriers/" + courierID.String() + "/status"

	t.Run("updated", func(t *testing.T) {
		m := newServerMocks()
		m.setCourierStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetCourierStatusCommand) bool {
			return cmd.CourierID().IsEqual(courierID) && cmd.Status() == courier.Busy
		})).Return(nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPut, target, `{"status":"busy"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		m.setCourierStatus.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		m := newServerMocks()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPut, target, `{"status":"sleeping"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown courier", func(t *testing.T) {
		m := newServerMocks()
		m.setCourierStatus.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("courier", courierID.String())).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPut, target, `{"status":"ready"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func newPlan(t *testing.T) (*plan.Plan, *courier.Courier, *order.Order, *order.Order) {
	t.Helper()
	loc, err := kernel.NewLocation(55.75, 37.60)
	require.NoError(t, err)
	hours, err := kernel.NewDailyWindow(8*time.Hour, 22*time.Hour)
	require.NoError(t, err)
	s, err := shop.NewShop(kernel.NewUUID(), "Central", loc, hours)
	require.NoError(t, err)

	tariff, err := courier.NewTariff(courier.TariffParams{MaxWeight: 10, MaxDistanceKm: 15, BaseCost: 50})
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), "Anna", kernel.Bicycle, s.ID(), hours, tariff)
	require.NoError(t, err)

	window, err := kernel.NewInterval(referenceTime, referenceTime.Add(time.Hour))
	require.NoError(t, err)
	shipped, err := order.NewOrder(kernel.NewUUID(), s.ID(), loc, 2, window, []kernel.VehicleType{kernel.Bicycle})
	require.NoError(t, err)
	rejected, err := order.NewOrder(kernel.NewUUID(), s.ID(), loc, 2, window, []kernel.VehicleType{kernel.Bicycle})
	require.NoError(t, err)
	rejected.Reject(order.Late)

	r, err := route.NewRoute(s, c, []*order.Order{shipped}, false, referenceTime, courier.DeliveryResult{
		Delivered:  1,
		Cost:       150,
		DistanceKm: 2.5,
		StopTimes:  []time.Time{referenceTime.Add(20 * time.Minute)},
		Departure:  referenceTime,
		Finish:     referenceTime.Add(25 * time.Minute),
	})
	require.NoError(t, err)

	p := plan.New(s.ID(), referenceTime)
	p.Assembled = []*route.Route{r}
	p.Undelivered = []*order.Order{rejected}
	p.Stats.CandidateRoutes = 3
	return p, c, shipped, rejected
}

func TestPlanDeliveries(t *testing.T) {
	t.Run("returns the fresh plan", func(t *testing.T) {
		p, c, shipped, rejected := newPlan(t)
		m := newServerMocks()
		m.planDeliveries.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PlanDeliveriesCommand) bool {
			return cmd.ShopID().IsEqual(p.ShopID) && cmd.ReferenceTime().Equal(referenceTime)
		})).Return(p, nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops/"+p.ShopID.String()+"/plan", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[Plan](t, rec)
		assert.Equal(t, p.ID.String(), got.ID)
		assert.Nil(t, got.CreatedAt)
		assert.Equal(t, 3, got.CandidateRoutes)
		require.Len(t, got.Routes, 1)
		assert.Equal(t, routeKindAssembled, got.Routes[0].Kind)
		require.NotNil(t, got.Routes[0].CourierID)
		assert.Equal(t, c.ID().String(), *got.Routes[0].CourierID)
		assert.Equal(t, []string{shipped.ID().String()}, got.Routes[0].OrderIDs)
		assert.True(t, got.Routes[0].DispatchTo.Equal(referenceTime.Add(40*time.Minute)))
		assert.Equal(t, []UndeliveredOrder{{ID: rejected.ID().String(), Reason: "late"}}, got.Undelivered)
		assert.Empty(t, got.NeverDeliverable)
	})

	t.Run("unknown shop", func(t *testing.T) {
		shopID := kernel.NewUUID()
		m := newServerMocks()
		m.planDeliveries.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("shop", shopID.String())).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops/"+shopID.String()+"/plan", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rate limited per shop", func(t *testing.T) {
		p, _, _, _ := newPlan(t)
		m := newServerMocks()
		m.planDeliveries.On("Handle", mock.Anything, mock.Anything).Return(p, nil)
		e := newTestRouter(t, m, RouterOptions{PlanRatePerSecond: 0.001, PlanBurst: 1})
		target := "/api/v1/shops/" + p.ShopID.String() + "/plan"

		first := do(e, http.MethodPost, target, "")
		second := do(e, http.MethodPost, target, "")
		other := do(e, http.MethodPost, "/api/v1/shops/"+kernel.NewUUID().String()+"/plan", "")

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Equal(t, http.StatusOK, other.Code)
		m.planDeliveries.AssertNumberOfCalls(t, "Handle", 2)
	})
}

func TestGetShopPlan(t *testing.T) {
	shopID := kernel.NewUUID()
	target := "/api/v1/shops/" + shopID.String() + "/plan"

	t.Run("latest plan", func(t *testing.T) {
		courierID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		undelivered := kernel.NewUUID()
		view := &queries.GetShopPlanQueryResponse{
			ID:            kernel.NewUUID(),
			ShopID:        shopID,
			ReferenceTime: referenceTime,
			CreatedAt:     referenceTime.Add(time.Second),
			Routes: []queries.PlanRouteView{
				{Kind: "assembled", CourierID: &courierID, VehicleType: kernel.Car, OrderIDs: []kernel.UUID{orderID}},
				{Kind: "receipted", VehicleType: kernel.Bicycle, Loop: true, OrderIDs: []kernel.UUID{kernel.NewUUID()}},
			},
			UndeliveredIDs:     []kernel.UUID{undelivered},
			Failures:           1,
			PlanningDurationMs: 1500,
		}
		m := newServerMocks()
		m.getShopPlan.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShopPlanQuery) bool {
			return q.ShopID().IsEqual(shopID)
		})).Return(view, nil).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodGet, target, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[Plan](t, rec)
		require.NotNil(t, got.CreatedAt)
		require.Len(t, got.Routes, 2)
		assert.Equal(t, courierID.String(), *got.Routes[0].CourierID)
		assert.Equal(t, "car", got.Routes[0].VehicleType)
		assert.Nil(t, got.Routes[1].CourierID)
		assert.True(t, got.Routes[1].Loop)
		assert.Equal(t, []UndeliveredOrder{{ID: undelivered.String()}}, got.Undelivered)
		assert.Equal(t, 1, got.FailureCount)
		assert.Equal(t, int64(1500), got.PlanningDurationMs)
	})

	t.Run("never planned", func(t *testing.T) {
		m := newServerMocks()
		m.getShopPlan.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("plan of shop", shopID.String())).Once()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodGet, target, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetUndeliveredOrders(t *testing.T) {
	shopID := kernel.NewUUID()
	loc, err := kernel.NewLocation(55.76, 37.61)
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	m := newServerMocks()
	m.getUndelivered.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetUndeliveredOrdersQueryResponse{{
		ID:        orderID,
		Location:  loc,
		Deadline:  referenceTime,
		Status:    order.Assembled,
		Rejection: order.OverWeight,
	}}, nil).Once()

	rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodGet, "/api/v1/shops/"+shopID.String()+"/undelivered", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]RejectedOrder](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, orderID.String(), got[0].ID)
	assert.Equal(t, "Assembled", got[0].Status)
	assert.Equal(t, "over_weight", got[0].Rejection)
	assert.InDelta(t, 55.76, got[0].Location.Latitude, 1e-9)
}

func TestGetShopCouriers(t *testing.T) {
	shopID := kernel.NewUUID()
	m := newServerMocks()
	m.getShopCouriers.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetShopCouriersQueryResponse{
		{ID: kernel.NewUUID(), Name: "Anna", VehicleType: kernel.Bicycle, Status: courier.Ready},
		{ID: kernel.NewUUID(), Name: "Taxi", VehicleType: kernel.Car, IsTaxi: true, Status: courier.Ready},
	}, nil).Once()

	rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodGet, "/api/v1/shops/"+shopID.String()+"/couriers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]Courier](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "bicycle", got[0].VehicleType)
	assert.Equal(t, "ready", got[0].Status)
	assert.True(t, got[1].IsTaxi)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 9*time.Hour + 30*time.Minute},
		{in: "24:00", want: 24 * time.Hour},
		{in: "9", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseClock(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestValidation(t *testing.T) {
	t.Run("api description converts with base path", func(t *testing.T) {
		doc, err := loadAPIDocument()

		require.NoError(t, err)
		assert.NotNil(t, doc.Paths.Value("/api/v1/shops/{shopId}/plan"))
		assert.Empty(t, doc.Servers)
	})

	t.Run("body of the wrong shape is rejected before the handler", func(t *testing.T) {
		m := newServerMocks()

		rec := do(newTestRouter(t, m, RouterOptions{}), http.MethodPost, "/api/v1/shops",
			`{"name":5,"location":{"latitude":55.75,"longitude":37.6},"opensAt":"08:00","closesAt":"22:00"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[Error](t, rec).Message, "name")
		m.createShop.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("undocumented routes pass through", func(t *testing.T) {
		rec := do(newTestRouter(t, newServerMocks(), RouterOptions{}), http.MethodGet, "/api/v1/unknown", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

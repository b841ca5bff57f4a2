package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deliveryplanner/internal/core/application/usecases/queries"
	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/order"
	"deliveryplanner/internal/core/domain/model/plan"
	"deliveryplanner/internal/core/domain/model/route"
	"deliveryplanner/internal/core/domain/services"
	"deliveryplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const (
	routeKindAssembled = "assembled"
	routeKindReceipted = "receipted"
)

// bindUUIDParam reads a path parameter the way generated OpenAPI servers do.
func bindUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

// parseClock reads "HH:MM" as an offset from midnight. "24:00" is the end of
// the day.
func parseClock(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "24:00" {
		return 24 * time.Hour, nil
	}
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("clock time", fmt.Errorf("%q is not HH:MM", s))
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func parseDailyWindow(start, end string) (kernel.DailyWindow, error) {
	from, err := parseClock(start)
	if err != nil {
		return kernel.DailyWindow{}, err
	}
	to, err := parseClock(end)
	if err != nil {
		return kernel.DailyWindow{}, err
	}
	return kernel.NewDailyWindow(from, to)
}

func parseVehicleTypes(names []string) ([]kernel.VehicleType, error) {
	out := make([]kernel.VehicleType, 0, len(names))
	for _, name := range names {
		vt, err := kernel.ParseVehicleType(name)
		if err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// fail maps a use case error to a status code. Server errors are logged and
// answered with message only.
func (s *Server) fail(ctx echo.Context, err error, message string) error {
	code := errorStatus(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(code, Error{Code: code, Message: message})
	}
	return ctx.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrInvalidPlanRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func planFromDomain(p *plan.Plan) Plan {
	out := Plan{
		ID:                 p.ID.String(),
		ShopID:             p.ShopID.String(),
		ReferenceTime:      p.ReferenceTime,
		Routes:             make([]Route, 0, len(p.Assembled)+len(p.Receipted)),
		Undelivered:        rejectedFromDomain(p.Undelivered),
		NeverDeliverable:   rejectedFromDomain(p.NeverDeliverable),
		CandidateRoutes:    p.Stats.CandidateRoutes,
		FailureCount:       len(p.Failures),
		PlanningDurationMs: p.Stats.Duration.Milliseconds(),
	}
	for _, r := range p.Assembled {
		out.Routes = append(out.Routes, routeFromDomain(r, routeKindAssembled))
	}
	for _, r := range p.Receipted {
		out.Routes = append(out.Routes, routeFromDomain(r, routeKindReceipted))
	}
	for _, f := range p.Failures {
		out.Failures = append(out.Failures, f.Error())
	}
	return out
}

func routeFromDomain(r *route.Route, kind string) Route {
	out := Route{
		Kind:         kind,
		VehicleType:  r.VehicleType().String(),
		IsTaxi:       r.Carrier().IsTaxi(),
		Loop:         r.IsLoop(),
		OrderIDs:     idStrings(r.OrderIDs()),
		StopTimes:    r.StopTimes(),
		DispatchFrom: r.Window().From(),
		DispatchTo:   r.Window().To(),
		Cost:         r.Cost(),
		DistanceKm:   r.DistanceKm(),
	}
	if c, ok := r.Courier(); ok {
		id := c.ID().String()
		out.CourierID = &id
	}
	return out
}

func rejectedFromDomain(orders []*order.Order) []UndeliveredOrder {
	out := make([]UndeliveredOrder, len(orders))
	for i, o := range orders {
		out[i] = UndeliveredOrder{ID: o.ID().String(), Reason: o.Rejection().String()}
	}
	return out
}

func planFromView(v *queries.GetShopPlanQueryResponse) Plan {
	createdAt := v.CreatedAt
	out := Plan{
		ID:                 v.ID.String(),
		ShopID:             v.ShopID.String(),
		ReferenceTime:      v.ReferenceTime,
		CreatedAt:          &createdAt,
		Routes:             make([]Route, len(v.Routes)),
		Undelivered:        make([]UndeliveredOrder, len(v.UndeliveredIDs)),
		NeverDeliverable:   make([]UndeliveredOrder, len(v.NeverDeliverable)),
		CandidateRoutes:    v.CandidateRoutes,
		FailureCount:       v.Failures,
		PlanningDurationMs: v.PlanningDurationMs,
	}
	for i, r := range v.Routes {
		out.Routes[i] = Route{
			Kind:         r.Kind,
			VehicleType:  r.VehicleType.String(),
			IsTaxi:       r.IsTaxi,
			Loop:         r.Loop,
			OrderIDs:     idStrings(r.OrderIDs),
			StopTimes:    r.StopTimes,
			DispatchFrom: r.DispatchFrom,
			DispatchTo:   r.DispatchTo,
			Cost:         r.Cost,
			DistanceKm:   r.DistanceKm,
		}
		if r.CourierID != nil {
			id := r.CourierID.String()
			out.Routes[i].CourierID = &id
		}
	}
	for i, id := range v.UndeliveredIDs {
		out.Undelivered[i] = UndeliveredOrder{ID: id.String()}
	}
	for i, id := range v.NeverDeliverable {
		out.NeverDeliverable[i] = UndeliveredOrder{ID: id.String()}
	}
	return out
}

func idStrings(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

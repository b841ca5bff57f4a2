package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"deliveryplanner/internal/adapters/in/http/docs"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// loadAPIDocument converts the served Swagger 2 description to OpenAPI 3 with
// the base path folded into every path, so routes match raw request URLs.
func loadAPIDocument() (*openapi3.T, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc2); err != nil {
		return nil, fmt.Errorf("parse api description: %w", err)
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("convert api description: %w", err)
	}

	paths := openapi3.NewPaths()
	for path, item := range doc3.Paths.Map() {
		paths.Set(docs.SwaggerInfo.BasePath+path, item)
	}
	doc3.Paths = paths
	doc3.Servers = nil
	return doc3, nil
}

// RequestValidator rejects requests whose parameters or body do not match the
// API description. Requests to undocumented paths pass through.
func RequestValidator() (echo.MiddlewareFunc, error) {
	doc, err := loadAPIDocument()
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return badRequest(c, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: requestErrorMessage(err)})
			}
			return next(c)
		}
	}, nil
}

func requestErrorMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return "Invalid request: " + err.Error()
}

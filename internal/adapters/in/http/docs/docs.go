// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/shops": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shops"],
                "summary": "Create a shop",
                "parameters": [
                    {"name": "shop", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewShop"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/shops/{shopId}/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Register an order of a shop",
                "parameters": [
                    {"name": "shopId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewOrder"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Shop not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/shops/{shopId}/plan": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Latest stored plan of a shop",
                "parameters": [
                    {"name": "shopId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Plan"}},
                    "404": {"description": "Never planned", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Plan the shop now",
                "parameters": [
                    {"name": "shopId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Plan"}},
                    "404": {"description": "Shop not found", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/shops/{shopId}/undelivered": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Open orders rejected by the last planning run",
                "parameters": [
                    {"name": "shopId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RejectedOrder"}}}
                }
            }
        },
        "/shops/{shopId}/couriers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["couriers"],
                "summary": "Couriers of a shop and all taxis",
                "parameters": [
                    {"name": "shopId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Courier"}}}
                }
            }
        },
        "/orders/{orderId}/assemble": {
            "post": {
                "tags": ["orders"],
                "summary": "Mark an order as assembled",
                "parameters": [
                    {"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Order is not receipted", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Order not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/couriers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["couriers"],
                "summary": "Create a shop courier or a taxi",
                "parameters": [
                    {"name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewCourier"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Created"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Shop not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/couriers/{courierId}/status": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["couriers"],
                "summary": "Change courier availability",
                "parameters": [
                    {"name": "courierId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourierStatus"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Courier not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "Created": {
            "type": "object",
            "properties": {"id": {"type": "string", "format": "uuid"}}
        },
        "Location": {
            "type": "object",
            "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}}
        },
        "NewShop": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "location": {"$ref": "#/definitions/Location"},
                "opensAt": {"type": "string", "example": "08:00"},
                "closesAt": {"type": "string", "example": "22:00"}
            }
        },
        "NewOrder": {
            "type": "object",
            "properties": {
                "location": {"$ref": "#/definitions/Location"},
                "weight": {"type": "number"},
                "windowFrom": {"type": "string", "format": "date-time"},
                "windowTo": {"type": "string", "format": "date-time"},
                "vehicleTypes": {"type": "array", "items": {"type": "string", "enum": ["foot", "bicycle", "scooter", "car", "truck"]}}
            }
        },
        "Tariff": {
            "type": "object",
            "properties": {
                "maxWeight": {"type": "number"},
                "maxDistanceKm": {"type": "number"},
                "serviceTimeSeconds": {"type": "integer"},
                "baseCost": {"type": "number"},
                "costPerKm": {"type": "number"},
                "costPerHour": {"type": "number"}
            }
        },
        "NewCourier": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "vehicleType": {"type": "string", "enum": ["foot", "bicycle", "scooter", "car", "truck"]},
                "isTaxi": {"type": "boolean"},
                "shopId": {"type": "string", "format": "uuid"},
                "shiftStart": {"type": "string", "example": "09:00"},
                "shiftEnd": {"type": "string", "example": "18:00"},
                "tariff": {"$ref": "#/definitions/Tariff"}
            }
        },
        "CourierStatus": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["ready", "busy", "offline"]}}
        },
        "Courier": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "vehicleType": {"type": "string"},
                "isTaxi": {"type": "boolean"},
                "status": {"type": "string"}
            }
        },
        "RejectedOrder": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "location": {"$ref": "#/definitions/Location"},
                "deadline": {"type": "string", "format": "date-time"},
                "status": {"type": "string"},
                "rejection": {"type": "string"}
            }
        },
        "Route": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["assembled", "receipted"]},
                "courierId": {"type": "string", "format": "uuid"},
                "vehicleType": {"type": "string"},
                "isTaxi": {"type": "boolean"},
                "loop": {"type": "boolean"},
                "orderIds": {"type": "array", "items": {"type": "string", "format": "uuid"}},
                "stopTimes": {"type": "array", "items": {"type": "string", "format": "date-time"}},
                "dispatchFrom": {"type": "string", "format": "date-time"},
                "dispatchTo": {"type": "string", "format": "date-time"},
                "cost": {"type": "number"},
                "distanceKm": {"type": "number"}
            }
        },
        "UndeliveredOrder": {
            "type": "object",
            "properties": {"id": {"type": "string", "format": "uuid"}, "reason": {"type": "string"}}
        },
        "Plan": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "shopId": {"type": "string", "format": "uuid"},
                "referenceTime": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "routes": {"type": "array", "items": {"$ref": "#/definitions/Route"}},
                "undelivered": {"type": "array", "items": {"$ref": "#/definitions/UndeliveredOrder"}},
                "neverDeliverable": {"type": "array", "items": {"$ref": "#/definitions/UndeliveredOrder"}},
                "candidateRoutes": {"type": "integer"},
                "failureCount": {"type": "integer"},
                "failures": {"type": "array", "items": {"type": "string"}},
                "planningDurationMs": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Delivery planner API",
	Description:      "Shops, orders and couriers in, delivery routes out.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

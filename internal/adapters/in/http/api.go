package http

import (
	"time"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewShop creates a shop. Opening hours are "HH:MM" clock times; "24:00"
// closes at midnight.
type NewShop struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	OpensAt  string   `json:"opensAt"`
	ClosesAt string   `json:"closesAt"`
}

type NewOrder struct {
	Location     Location  `json:"location"`
	Weight       float64   `json:"weight"`
	WindowFrom   time.Time `json:"windowFrom"`
	WindowTo     time.Time `json:"windowTo"`
	VehicleTypes []string  `json:"vehicleTypes"`
}

type Tariff struct {
	MaxWeight          float64 `json:"maxWeight"`
	MaxDistanceKm      float64 `json:"maxDistanceKm"`
	ServiceTimeSeconds int     `json:"serviceTimeSeconds"`
	BaseCost           float64 `json:"baseCost"`
	CostPerKm          float64 `json:"costPerKm"`
	CostPerHour        float64 `json:"costPerHour"`
}

// NewCourier creates a shop courier, or a taxi when IsTaxi is set. Taxis
// ignore ShopID and the shift.
type NewCourier struct {
	Name        string `json:"name"`
	VehicleType string `json:"vehicleType"`
	IsTaxi      bool   `json:"isTaxi"`
	ShopID      string `json:"shopId,omitempty"`
	ShiftStart  string `json:"shiftStart,omitempty"`
	ShiftEnd    string `json:"shiftEnd,omitempty"`
	Tariff      Tariff `json:"tariff"`
}

type CourierStatus struct {
	Status string `json:"status"`
}

type Created struct {
	ID string `json:"id"`
}

type Route struct {
	Kind         string      `json:"kind"`
	CourierID    *string     `json:"courierId,omitempty"`
	VehicleType  string      `json:"vehicleType"`
	IsTaxi       bool        `json:"isTaxi"`
	Loop         bool        `json:"loop"`
	OrderIDs     []string    `json:"orderIds"`
	StopTimes    []time.Time `json:"stopTimes"`
	DispatchFrom time.Time   `json:"dispatchFrom"`
	DispatchTo   time.Time   `json:"dispatchTo"`
	Cost         float64     `json:"cost"`
	DistanceKm   float64     `json:"distanceKm"`
}

// UndeliveredOrder carries the rejection reason when it is known.
type UndeliveredOrder struct {
	ID     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}

type Plan struct {
	ID                 string             `json:"id"`
	ShopID             string             `json:"shopId"`
	ReferenceTime      time.Time          `json:"referenceTime"`
	CreatedAt          *time.Time         `json:"createdAt,omitempty"`
	Routes             []Route            `json:"routes"`
	Undelivered        []UndeliveredOrder `json:"undelivered"`
	NeverDeliverable   []UndeliveredOrder `json:"neverDeliverable"`
	CandidateRoutes    int                `json:"candidateRoutes"`
	FailureCount       int                `json:"failureCount"`
	Failures           []string           `json:"failures,omitempty"`
	PlanningDurationMs int64              `json:"planningDurationMs"`
}

type RejectedOrder struct {
	ID        string    `json:"id"`
	Location  Location  `json:"location"`
	Deadline  time.Time `json:"deadline"`
	Status    string    `json:"status"`
	Rejection string    `json:"rejection"`
}

type Courier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VehicleType string `json:"vehicleType"`
	IsTaxi      bool   `json:"isTaxi"`
	Status      string `json:"status"`
}

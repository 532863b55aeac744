package models

import "encoding/json"

// BookingRequest carries one booking attempt from the caller to the checkout
// session factory. It is built once per attempt and never mutated afterwards;
// retries construct a fresh value.
type BookingRequest struct {
	RideID        string      `json:"rideId"`
	Amount        json.Number `json:"price"`
	DepartureCity string      `json:"departure_city"`
	ArrivalCity   string      `json:"arrival_city"`
	SuccessTarget string      `json:"success_url,omitempty"`
	CancelTarget  string      `json:"cancel_url,omitempty"`

	// Requester feeds the idempotency token, never the Stripe payload.
	Requester string `json:"-"`
}

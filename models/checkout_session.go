package models

import (
	"time"

	"github.com/stripe/stripe-go/v79"
)

// CheckoutSession mirrors the processor-issued session. The processor owns the
// session; this record exists so reconciliation has local state to match against.
type CheckoutSession struct {
	ID            string                       `json:"id"`
	RideID        string                       `json:"ride_id"`
	HostedURL     string                       `json:"hosted_url"`
	Status        stripe.CheckoutSessionStatus `json:"status"`
	Mode          stripe.CheckoutSessionMode   `json:"mode"`
	SuccessURL    string                       `json:"success_url"`
	CancelURL     string                       `json:"cancel_url"`
	AmountTotal   int64                        `json:"amount_total"`
	Currency      stripe.Currency              `json:"currency"`
	DepartureCity string                       `json:"departure_city"`
	ArrivalCity   string                       `json:"arrival_city"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

type PartialCheckoutSession struct {
	ID            string                        `json:"id"`
	RideID        *string                       `json:"ride_id,omitempty"`
	HostedURL     *string                       `json:"hosted_url,omitempty"`
	Status        *stripe.CheckoutSessionStatus `json:"status,omitempty"`
	Mode          *stripe.CheckoutSessionMode   `json:"mode,omitempty"`
	SuccessURL    *string                       `json:"success_url,omitempty"`
	CancelURL     *string                       `json:"cancel_url,omitempty"`
	AmountTotal   *int64                        `json:"amount_total,omitempty"`
	Currency      *stripe.Currency              `json:"currency,omitempty"`
	DepartureCity *string                       `json:"departure_city,omitempty"`
	ArrivalCity   *string                       `json:"arrival_city,omitempty"`
	CreatedAt     *time.Time                    `json:"created_at,omitempty"`
	UpdatedAt     *time.Time                    `json:"updated_at,omitempty"`
}

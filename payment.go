package booking

import (
	"context"

	"goride.io/booking/models"
)

// Checkout is the payment-processor facing surface of the booking flow.
type Checkout interface {
	// CreateCheckoutSession validates the request, normalizes its redirect
	// targets and creates exactly one hosted payment session.
	CreateCheckoutSession(ctx context.Context, req *models.BookingRequest) (*models.CheckoutSession, error) // Interacts with Stripe

	Close()
}

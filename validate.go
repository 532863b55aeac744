package booking

import (
	"math"
	"strconv"
	"strings"

	"goride.io/booking/models"
)

// ValidateBookingRequest checks one booking attempt before any payment action.
// Rules run in order and stop at the first failure. No upper bound is applied
// to the amount; unreasonable values are the processor's call to reject.
func ValidateBookingRequest(req *models.BookingRequest) error {
	if strings.TrimSpace(req.RideID) == "" {
		return ErrMissingRide
	}
	if strings.TrimSpace(req.DepartureCity) == "" || strings.TrimSpace(req.ArrivalCity) == "" {
		return ErrMissingLocation
	}

	amount, err := strconv.ParseFloat(req.Amount.String(), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

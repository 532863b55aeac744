package booking

import "errors"

// Validation and normalization failures. All of these are terminal for the
// current attempt and surface before any processor call is made.
var (
	ErrMissingRide        = errors.New("missing ride reference")
	ErrMissingLocation    = errors.New("missing departure or arrival city")
	ErrInvalidAmount      = errors.New("invalid price amount")
	ErrInvalidRedirectURL = errors.New("invalid redirect url")
	ErrMissingSessionURL  = errors.New("checkout session has no redirect url")
)

// PaymentSessionError reports a processor-side rejection. The processor's own
// message is carried through unmodified so diagnosis does not depend on logs.
type PaymentSessionError struct {
	Reason string
}

func (e *PaymentSessionError) Error() string {
	return e.Reason
}

package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"goride.io/booking/checkout_session"
	"goride.io/booking/config"
	"goride.io/booking/models"
)

const (
	lineItemDescription = "Réservation de votre trajet en covoiturage"
	lineItemImage       = "https://images.unsplash.com/photo-1469854523086-cc02fe5d8800"
)

type StripeCheckout struct {
	client       *client.API
	stripeConfig config.StripeConfig
	sessions     checkout_session.Service
	logger       *zap.Logger
}

func NewStripeCheckout(cfg *config.Config, sessions checkout_session.Service, logger *zap.Logger) Checkout {
	return &StripeCheckout{
		client:       client.New(cfg.Stripe.SecretKey, nil),
		stripeConfig: cfg.Stripe,
		sessions:     sessions,
		logger:       logger,
	}
}

// CreateCheckoutSession runs the full factory pipeline: validate, normalize
// redirect bases, convert to minor units and submit a single payment-mode
// session to Stripe. Every failure is terminal for the attempt; nothing here
// retries on its own.
func (sc *StripeCheckout) CreateCheckoutSession(ctx context.Context, req *models.BookingRequest) (*models.CheckoutSession, error) {
	if err := ValidateBookingRequest(req); err != nil {
		return nil, err
	}

	successBase, err := NormalizeRedirectBase(req.SuccessTarget)
	if err != nil {
		return nil, err
	}
	cancelBase, err := NormalizeRedirectBase(req.CancelTarget)
	if err != nil {
		return nil, err
	}

	amount, err := MinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	successURL := fmt.Sprintf("%s/rides/%s?success=true", successBase, req.RideID)
	cancelURL := fmt.Sprintf("%s/rides/%s?canceled=true", cancelBase, req.RideID)

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Locale:             stripe.String(sc.stripeConfig.Locale),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(sc.stripeConfig.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("Trajet de %s à %s", req.DepartureCity, req.ArrivalCity)),
						Description: stripe.String(lineItemDescription),
						Images:      stripe.StringSlice([]string{lineItemImage}),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			CaptureMethod: stripe.String(sc.stripeConfig.CaptureMethod),
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("rideId", req.RideID)
	params.AddMetadata("departure_city", req.DepartureCity)
	params.AddMetadata("arrival_city", req.ArrivalCity)

	// Deterministic key: a retried booking intent returns the same session
	// instead of minting a duplicate.
	params.IdempotencyKey = stripe.String(bookingIdempotencyKey(req.RideID, amount, req.Requester))

	stripeSession, err := sc.client.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			sc.logger.Error("stripe rejected checkout session",
				zap.String("ride_id", req.RideID),
				zap.String("code", string(stripeErr.Code)),
				zap.Error(err))
			return nil, &PaymentSessionError{Reason: stripeErr.Msg}
		}
		sc.logger.Error("failed to create checkout session", zap.String("ride_id", req.RideID), zap.Error(err))
		return nil, &PaymentSessionError{Reason: err.Error()}
	}

	if stripeSession.URL == "" {
		return nil, ErrMissingSessionURL
	}

	session := &models.CheckoutSession{
		ID:            stripeSession.ID,
		RideID:        req.RideID,
		HostedURL:     stripeSession.URL,
		Status:        stripeSession.Status,
		Mode:          stripeSession.Mode,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
		AmountTotal:   amount,
		Currency:      stripe.Currency(sc.stripeConfig.Currency),
		DepartureCity: req.DepartureCity,
		ArrivalCity:   req.ArrivalCity,
	}

	// The local record is advisory reconciliation state. Losing it does not
	// invalidate the session the processor already issued.
	if err = sc.recordSession(ctx, session); err != nil {
		sc.logger.Warn("failed to record checkout session",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	sc.logger.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.String("ride_id", req.RideID),
		zap.Int64("amount_total", amount))

	return session, nil
}

func (sc *StripeCheckout) recordSession(ctx context.Context, session *models.CheckoutSession) error {
	partial := &models.PartialCheckoutSession{
		ID:            session.ID,
		RideID:        &session.RideID,
		HostedURL:     &session.HostedURL,
		Status:        &session.Status,
		Mode:          &session.Mode,
		SuccessURL:    &session.SuccessURL,
		CancelURL:     &session.CancelURL,
		AmountTotal:   &session.AmountTotal,
		Currency:      &session.Currency,
		DepartureCity: &session.DepartureCity,
		ArrivalCity:   &session.ArrivalCity,
	}
	return sc.sessions.Upsert(ctx, partial)
}

func bookingIdempotencyKey(rideID string, amount int64, requester string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", rideID, amount, requester)))
	return "booking_" + hex.EncodeToString(sum[:])
}

func (sc *StripeCheckout) Close() {
	_ = sc.logger.Sync()
}

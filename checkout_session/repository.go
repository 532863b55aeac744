package checkout_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v79"

	"goride.io/booking/driver"
	"goride.io/booking/models"
)

var ErrSessionNotFound = errors.New("checkout session not found")

type Repository interface {
	Upsert(ctx context.Context, tx pgx.Tx, session *models.PartialCheckoutSession) error
	GetByID(ctx context.Context, tx pgx.Tx, id string) (*models.CheckoutSession, error)
}

type repository struct {
	conn driver.PostgresPool
}

func NewRepository(conn driver.PostgresPool) Repository {
	return &repository{conn: conn}
}

func (r *repository) Upsert(ctx context.Context, tx pgx.Tx, session *models.PartialCheckoutSession) error {
	const query = `
    INSERT INTO checkout_sessions (id, ride_id, hosted_url, status, mode, success_url, cancel_url, amount_total, currency, departure_city, arrival_city, created_at, updated_at)
    VALUES (@id, @ride_id, @hosted_url, @status, @mode, @success_url, @cancel_url, @amount_total, @currency, @departure_city, @arrival_city, COALESCE(@created_at, NOW()), @updated_at)
    ON CONFLICT (id) DO UPDATE SET
        ride_id = COALESCE(@ride_id, checkout_sessions.ride_id),
        hosted_url = COALESCE(@hosted_url, checkout_sessions.hosted_url),
        status = COALESCE(@status, checkout_sessions.status),
        mode = COALESCE(@mode, checkout_sessions.mode),
        success_url = COALESCE(@success_url, checkout_sessions.success_url),
        cancel_url = COALESCE(@cancel_url, checkout_sessions.cancel_url),
        amount_total = COALESCE(@amount_total, checkout_sessions.amount_total),
        currency = COALESCE(@currency, checkout_sessions.currency),
        departure_city = COALESCE(@departure_city, checkout_sessions.departure_city),
        arrival_city = COALESCE(@arrival_city, checkout_sessions.arrival_city),
        updated_at = @updated_at
    WHERE checkout_sessions.id = @id
    `

	now := time.Now()
	args := pgx.NamedArgs{
		"id":             session.ID,
		"ride_id":        session.RideID,
		"hosted_url":     session.HostedURL,
		"status":         session.Status,
		"mode":           session.Mode,
		"success_url":    session.SuccessURL,
		"cancel_url":     session.CancelURL,
		"amount_total":   session.AmountTotal,
		"currency":       session.Currency,
		"departure_city": session.DepartureCity,
		"arrival_city":   session.ArrivalCity,
		"created_at":     session.CreatedAt,
		"updated_at":     now,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to upsert checkout session: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id string) (*models.CheckoutSession, error) {
	const query = `
    SELECT id, ride_id, hosted_url, status, mode, success_url, cancel_url, amount_total, currency, departure_city, arrival_city, created_at, updated_at
    FROM checkout_sessions
    WHERE id = @id
    `

	var (
		session      models.CheckoutSession
		status, mode string
		currency     string
	)
	row := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	if err := row.Scan(
		&session.ID,
		&session.RideID,
		&session.HostedURL,
		&status,
		&mode,
		&session.SuccessURL,
		&session.CancelURL,
		&session.AmountTotal,
		&currency,
		&session.DepartureCity,
		&session.ArrivalCity,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	session.Status = stripe.CheckoutSessionStatus(status)
	session.Mode = stripe.CheckoutSessionMode(mode)
	session.Currency = stripe.Currency(currency)

	return &session, nil
}

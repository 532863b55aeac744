// Package flow drives one booking attempt from the caller's side: validate
// locally, ask the checkout endpoint for a hosted payment session, then hand
// the browser off to it. Each attempt is independent; a failed attempt is
// terminal and the caller must start a fresh one.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"goride.io/booking"
	"goride.io/booking/models"
)

type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateValidating           State = "validating"
	StateCreatingSession      State = "creating_session"
	StateRedirecting          State = "redirecting"
	StateFailed               State = "failed"
)

var (
	ErrNotArmed       = errors.New("booking flow has not been armed")
	ErrAlreadyStarted = errors.New("booking flow already ran")
)

// Navigator performs the full-page redirect to the hosted payment URL.
type Navigator interface {
	Redirect(url string)
}

// Notifier surfaces one human-readable failure message per attempt.
type Notifier interface {
	Error(message string)
}

type BookingFlow struct {
	endpoint   string
	httpClient *http.Client
	navigator  Navigator
	notifier   Notifier
	logger     *zap.Logger

	mu    sync.Mutex
	state State
	req   *models.BookingRequest
}

func NewBookingFlow(endpoint string, navigator Navigator, notifier Notifier, logger *zap.Logger) *BookingFlow {
	return &BookingFlow{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		navigator:  navigator,
		notifier:   notifier,
		logger:     logger,
		state:      StateIdle,
	}
}

func (f *BookingFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Start arms the flow with a booking request. Nothing side-effecting happens
// here: the payment processor is only contacted after an explicit Confirm, so
// showing the booking view cannot by itself start a charge.
func (f *BookingFlow) Start(req *models.BookingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return ErrAlreadyStarted
	}

	f.req = req
	f.state = StateAwaitingConfirmation
	return nil
}

// Confirm runs the armed attempt: validator, session creation, redirect.
// Every failure lands in StateFailed, is reported exactly once through the
// notifier and never navigates; the flow does not retry on its own.
func (f *BookingFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateAwaitingConfirmation {
		f.mu.Unlock()
		return ErrNotArmed
	}
	f.state = StateValidating
	req := f.req
	f.mu.Unlock()

	if err := booking.ValidateBookingRequest(req); err != nil {
		return f.fail(err)
	}

	f.setState(StateCreatingSession)

	url, err := f.createSession(ctx, req)
	if err != nil {
		return f.fail(err)
	}

	f.setState(StateRedirecting)
	f.logger.Info("redirecting to hosted payment page", zap.String("ride_id", req.RideID))
	f.navigator.Redirect(url)

	return nil
}

func (f *BookingFlow) createSession(ctx context.Context, req *models.BookingRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return "", &booking.PaymentSessionError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read checkout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Error string `json:"error"`
		}
		if err = json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
			return "", &booking.PaymentSessionError{Reason: failure.Error}
		}
		return "", &booking.PaymentSessionError{Reason: fmt.Sprintf("checkout endpoint returned status %d", resp.StatusCode)}
	}

	var success struct {
		URL string `json:"url"`
	}
	if err = json.Unmarshal(body, &success); err != nil {
		return "", fmt.Errorf("failed to decode checkout response: %w", err)
	}
	if success.URL == "" {
		return "", booking.ErrMissingSessionURL
	}

	return success.URL, nil
}

func (f *BookingFlow) fail(err error) error {
	f.setState(StateFailed)
	f.logger.Warn("booking attempt failed", zap.Error(err))
	f.notifier.Error(err.Error())
	return err
}

func (f *BookingFlow) setState(state State) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()
}

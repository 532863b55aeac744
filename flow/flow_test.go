package flow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goride.io/booking"
	"goride.io/booking/models"
)

type fakeNavigator struct {
	urls []string
}

func (n *fakeNavigator) Redirect(url string) {
	n.urls = append(n.urls, url)
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Error(message string) {
	n.messages = append(n.messages, message)
}

func bookingRequest(amount string) *models.BookingRequest {
	return &models.BookingRequest{
		RideID:        "r1",
		Amount:        json.Number(amount),
		DepartureCity: "Paris",
		ArrivalCity:   "Lyon",
		SuccessTarget: "https://app.example",
		CancelTarget:  "https://app.example",
	}
}

func TestBookingFlowRedirectsOnSuccess(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "r1", req.RideID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": "https://checkout.stripe.com/c/pay/cs_1"})
	}))
	defer server.Close()

	navigator := &fakeNavigator{}
	notifier := &fakeNotifier{}
	f := NewBookingFlow(server.URL, navigator, notifier, zap.NewNop())

	require.NoError(t, f.Start(bookingRequest("25")))
	assert.Equal(t, StateAwaitingConfirmation, f.State())
	assert.Zero(t, calls, "arming the flow must not contact the endpoint")

	require.NoError(t, f.Confirm(context.Background()))

	assert.Equal(t, StateRedirecting, f.State())
	assert.Equal(t, []string{"https://checkout.stripe.com/c/pay/cs_1"}, navigator.urls)
	assert.Empty(t, notifier.messages)
	assert.Equal(t, 1, calls)
}

func TestBookingFlowInvalidAmountNeverCallsEndpoint(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	navigator := &fakeNavigator{}
	notifier := &fakeNotifier{}
	f := NewBookingFlow(server.URL, navigator, notifier, zap.NewNop())

	require.NoError(t, f.Start(bookingRequest("0")))
	err := f.Confirm(context.Background())

	assert.ErrorIs(t, err, booking.ErrInvalidAmount)
	assert.Equal(t, StateFailed, f.State())
	assert.Zero(t, calls)
	assert.Empty(t, navigator.urls)
	assert.Equal(t, []string{booking.ErrInvalidAmount.Error()}, notifier.messages)
}

func TestBookingFlowSurfacesProcessorRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Your card was declined."})
	}))
	defer server.Close()

	navigator := &fakeNavigator{}
	notifier := &fakeNotifier{}
	f := NewBookingFlow(server.URL, navigator, notifier, zap.NewNop())

	require.NoError(t, f.Start(bookingRequest("25")))
	err := f.Confirm(context.Background())

	var sessionErr *booking.PaymentSessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, "Your card was declined.", sessionErr.Reason)
	assert.Equal(t, StateFailed, f.State())
	assert.Empty(t, navigator.urls, "a failed attempt must not navigate")
	assert.Equal(t, []string{"Your card was declined."}, notifier.messages)
}

func TestBookingFlowMissingSessionURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	navigator := &fakeNavigator{}
	notifier := &fakeNotifier{}
	f := NewBookingFlow(server.URL, navigator, notifier, zap.NewNop())

	require.NoError(t, f.Start(bookingRequest("25")))
	err := f.Confirm(context.Background())

	assert.ErrorIs(t, err, booking.ErrMissingSessionURL)
	assert.Empty(t, navigator.urls)
	assert.Len(t, notifier.messages, 1)
}

func TestBookingFlowGuards(t *testing.T) {
	navigator := &fakeNavigator{}
	notifier := &fakeNotifier{}
	f := NewBookingFlow("http://unused.example", navigator, notifier, zap.NewNop())

	// Confirm before Start: the guarded transition refuses to fire.
	assert.ErrorIs(t, f.Confirm(context.Background()), ErrNotArmed)

	require.NoError(t, f.Start(bookingRequest("25")))
	assert.ErrorIs(t, f.Start(bookingRequest("25")), ErrAlreadyStarted)
}

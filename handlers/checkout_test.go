package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goride.io/booking"
	"goride.io/booking/checkout_session"
	"goride.io/booking/models"
)

type checkoutStub struct {
	lastRequest *models.BookingRequest
	session     *models.CheckoutSession
	err         error
}

func (s *checkoutStub) CreateCheckoutSession(_ context.Context, req *models.BookingRequest) (*models.CheckoutSession, error) {
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *checkoutStub) Close() {}

type sessionServiceStub struct {
	session *models.CheckoutSession
	err     error
}

func (s *sessionServiceStub) Upsert(context.Context, *models.PartialCheckoutSession) error {
	return nil
}

func (s *sessionServiceStub) GetByID(context.Context, string) (*models.CheckoutSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func TestCreateCheckoutSessionHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		origin     string
		stub       *checkoutStub
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name: "successful session",
			body: `{"rideId":"r1","price":25,"departure_city":"Paris","arrival_city":"Lyon","success_url":"https://app.example/","cancel_url":"https://app.example/"}`,
			stub: &checkoutStub{
				session: &models.CheckoutSession{HostedURL: "https://checkout.stripe.com/c/pay/cs_1"},
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"url": "https://checkout.stripe.com/c/pay/cs_1"},
		},
		{
			name: "validation failure passes reason through",
			body: `{"rideId":"","price":25,"departure_city":"Paris","arrival_city":"Lyon"}`,
			stub: &checkoutStub{
				err: booking.ErrMissingRide,
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": booking.ErrMissingRide.Error()},
		},
		{
			name: "processor failure passes reason through",
			body: `{"rideId":"r1","price":25,"departure_city":"Paris","arrival_city":"Lyon"}`,
			stub: &checkoutStub{
				err: &booking.PaymentSessionError{Reason: "Your card was declined."},
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "Your card was declined."},
		},
		{
			name:       "malformed payload",
			body:       `{"rideId":`,
			stub:       &checkoutStub{},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "Invalid request payload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/checkout-session", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewCheckoutHandler(tt.stub, &sessionServiceStub{})
			require.NoError(t, handler.CreateCheckoutSession(c))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestCreateCheckoutSessionHandlerDefaultsRedirectTargetsToOrigin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/checkout-session",
		strings.NewReader(`{"rideId":"r1","price":25,"departure_city":"Paris","arrival_city":"Lyon"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Origin", "https://covoit.example")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &checkoutStub{session: &models.CheckoutSession{HostedURL: "https://checkout.stripe.com/c/pay/cs_1"}}
	handler := NewCheckoutHandler(stub, &sessionServiceStub{})
	require.NoError(t, handler.CreateCheckoutSession(c))

	require.NotNil(t, stub.lastRequest)
	assert.Equal(t, "https://covoit.example", stub.lastRequest.SuccessTarget)
	assert.Equal(t, "https://covoit.example", stub.lastRequest.CancelTarget)
	assert.NotEmpty(t, stub.lastRequest.Requester)
}

func TestCreateCheckoutSessionHandlerKeepsExplicitRedirectTargets(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/checkout-session",
		strings.NewReader(`{"rideId":"r1","price":25,"departure_city":"Paris","arrival_city":"Lyon","success_url":"https://a.example/ok","cancel_url":"https://a.example/ko"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Origin", "https://covoit.example")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &checkoutStub{session: &models.CheckoutSession{HostedURL: "https://checkout.stripe.com/c/pay/cs_1"}}
	handler := NewCheckoutHandler(stub, &sessionServiceStub{})
	require.NoError(t, handler.CreateCheckoutSession(c))

	require.NotNil(t, stub.lastRequest)
	assert.Equal(t, "https://a.example/ok", stub.lastRequest.SuccessTarget)
	assert.Equal(t, "https://a.example/ko", stub.lastRequest.CancelTarget)
}

func TestGetCheckoutSessionHandler(t *testing.T) {
	tests := []struct {
		name       string
		sessions   *sessionServiceStub
		wantStatus int
	}{
		{
			name: "session found",
			sessions: &sessionServiceStub{
				session: &models.CheckoutSession{ID: "cs_1", RideID: "r1", AmountTotal: 2500},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "session not found",
			sessions:   &sessionServiceStub{err: checkout_session.ErrSessionNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			sessions:   &sessionServiceStub{err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/checkout-sessions/cs_1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("cs_1")

			handler := NewCheckoutHandler(&checkoutStub{}, tt.sessions)
			require.NoError(t, handler.GetCheckoutSession(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body models.CheckoutSession
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "cs_1", body.ID)
				assert.Equal(t, "r1", body.RideID)
			}
		})
	}
}

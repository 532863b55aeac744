package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"goride.io/booking"
	"goride.io/booking/checkout_session"
	"goride.io/booking/models"
)

type CheckoutHandler interface {
	CreateCheckoutSession(c echo.Context) error
	GetCheckoutSession(c echo.Context) error
}

type checkoutHandler struct {
	Checkout booking.Checkout
	Sessions checkout_session.Service
}

func NewCheckoutHandler(Checkout booking.Checkout, Sessions checkout_session.Service) CheckoutHandler {
	return &checkoutHandler{
		Checkout: Checkout,
		Sessions: Sessions,
	}
}

// CreateCheckoutSession handles POST /checkout-session. Failure reasons are
// passed through as-is: the taxonomy messages and the processor's own message
// are what the caller shows the user.
func (ch *checkoutHandler) CreateCheckoutSession(c echo.Context) error {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	// Callers that omit redirect targets get sent back to wherever they
	// came from, like the original browser flow.
	origin := c.Request().Header.Get("Origin")
	if req.SuccessTarget == "" {
		req.SuccessTarget = origin
	}
	if req.CancelTarget == "" {
		req.CancelTarget = origin
	}
	req.Requester = c.RealIP()

	session, err := ch.Checkout.CreateCheckoutSession(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": session.HostedURL})
}

// GetCheckoutSession handles GET /checkout-sessions/:id. It serves the local
// record of a created session so reconciliation has state to match against.
func (ch *checkoutHandler) GetCheckoutSession(c echo.Context) error {
	id := c.Param("id")

	session, err := ch.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, checkout_session.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Checkout session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get checkout session"})
	}

	return c.JSON(http.StatusOK, session)
}

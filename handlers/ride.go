package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"goride.io/booking/models"
	"goride.io/booking/ride"
)

type RideHandler interface {
	CreateRide(c echo.Context) error
	GetRide(c echo.Context) error
	SearchRides(c echo.Context) error
	BookSeat(c echo.Context) error
}

type rideHandler struct {
	Ride ride.Service
}

func NewRideHandler(Ride ride.Service) RideHandler {
	return &rideHandler{
		Ride: Ride,
	}
}

// CreateRide handles POST /rides
func (rh *rideHandler) CreateRide(c echo.Context) error {
	var req models.Ride
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if err := rh.Ride.Create(c.Request().Context(), &req); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create ride"})
	}

	return c.JSON(http.StatusCreated, req)
}

// GetRide handles GET /rides/:id
func (rh *rideHandler) GetRide(c echo.Context) error {
	id := c.Param("id")

	r, err := rh.Ride.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ride.ErrRideNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Ride not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get ride"})
	}

	return c.JSON(http.StatusOK, r)
}

// SearchRides handles GET /rides
func (rh *rideHandler) SearchRides(c echo.Context) error {
	departure := c.QueryParam("departure_city")
	arrival := c.QueryParam("arrival_city")

	date := time.Now()
	if raw := c.QueryParam("departure_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid departure date"})
		}
		date = parsed
	}

	rides, err := rh.Ride.Search(c.Request().Context(), departure, arrival, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to search rides"})
	}

	return c.JSON(http.StatusOK, rides)
}

// BookSeat handles POST /rides/:id/book
func (rh *rideHandler) BookSeat(c echo.Context) error {
	id := c.Param("id")

	if err := rh.Ride.ReserveSeat(c.Request().Context(), id); err != nil {
		if errors.Is(err, ride.ErrNoSeats) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "No seats available"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to book seat"})
	}

	return c.NoContent(http.StatusOK)
}

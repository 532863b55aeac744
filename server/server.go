package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"goride.io/booking/config"
	"goride.io/booking/handlers"
)

type Server struct {
	echo     *echo.Echo
	addr     string
	Checkout handlers.CheckoutHandler
	Ride     handlers.RideHandler
	Employee handlers.EmployeeHandler
}

func NewServer(
	cfg *config.Config,
	Checkout handlers.CheckoutHandler,
	Ride handlers.RideHandler,
	Employee handlers.EmployeeHandler,
) *Server {
	return &Server{
		echo:     echo.New(),
		addr:     cfg.Server.Addr,
		Checkout: Checkout,
		Ride:     Ride,
		Employee: Employee,
	}
}

// Start initializes the server by registering middlewares and routes, and starts listening for connections on the provided address.
// It returns an error if there is an issue starting the server.
func (s *Server) Start(address string) error {
	s.registerMiddlewares()
	s.registerRoutes()
	return s.echo.Start(address)
}

// Run starts the server in a goroutine and blocks until an interrupt or
// SIGTERM arrives, then shuts the server down with a five second grace period.
func (s *Server) Run() error {

	go func() {
		if err := s.Start(s.addr); err != nil {
			s.echo.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
	// Browser callers probe with a preflight OPTIONS request before posting
	// the booking; answer it permissively before any handler runs.
	s.echo.Use(middleware.CORS())
}

func (s *Server) registerRoutes() {

	s.echo.POST("/checkout-session", s.Checkout.CreateCheckoutSession)
	s.echo.GET("/checkout-sessions/:id", s.Checkout.GetCheckoutSession)

	s.echo.POST("/rides", s.Ride.CreateRide)
	s.echo.GET("/rides", s.Ride.SearchRides)
	s.echo.GET("/rides/:id", s.Ride.GetRide)
	s.echo.POST("/rides/:id/book", s.Ride.BookSeat)

	s.echo.GET("/employees/authorized", s.Employee.CheckAuthorization)
	s.echo.POST("/employees", s.Employee.AddEmployee)
}

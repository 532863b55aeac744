//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"goride.io/booking"
	"goride.io/booking/checkout_session"
	"goride.io/booking/config"
	"goride.io/booking/driver"
	"goride.io/booking/employee"
	"goride.io/booking/handlers"
	"goride.io/booking/ride"
	"goride.io/booking/server"
)

func InitializeBookingService() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvidePostgresConn,
		config.ProvideEmber,
		config.ProvideIgnite,
		driver.NewTransactionManager,
		checkout_session.NewRepository,
		checkout_session.NewService,
		ride.NewRepository,
		ride.NewService,
		employee.NewRepository,
		employee.NewService,
		booking.NewStripeCheckout,
		handlers.NewCheckoutHandler,
		handlers.NewRideHandler,
		handlers.NewEmployeeHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}

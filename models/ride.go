package models

import "time"

// Ride represents a published carpool trip with seats for sale.
type Ride struct {
	ID             string    `json:"id"`
	DriverID       string    `json:"driver_id"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureDate  time.Time `json:"departure_date"`
	Price          float64   `json:"price"`
	SeatsAvailable int32     `json:"seats_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewRide() *Ride {
	return &Ride{}
}

package ride

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goride.io/booking/driver"
	"goride.io/booking/models"
)

type Service interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	Search(ctx context.Context, departureCity, arrivalCity string, departureDate time.Time) ([]*models.Ride, error)
	ReserveSeat(ctx context.Context, id string) error
}

type service struct {
	repo               Repository
	transactionManager *driver.TransactionManager
	logger             *zap.Logger
}

func NewService(repo Repository, tm *driver.TransactionManager, logger *zap.Logger) Service {
	return &service{
		repo:               repo,
		transactionManager: tm,
		logger:             logger,
	}
}

func (s *service) Create(ctx context.Context, ride *models.Ride) error {
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, ride)
	}); err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	var ride *models.Ride
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		ride, err = s.repo.GetByID(ctx, tx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return ride, nil
}

func (s *service) Search(ctx context.Context, departureCity, arrivalCity string, departureDate time.Time) ([]*models.Ride, error) {
	var rides []*models.Ride
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		rides, err = s.repo.Search(ctx, tx, departureCity, arrivalCity, departureDate)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to search rides: %w", err)
	}
	return rides, nil
}

func (s *service) ReserveSeat(ctx context.Context, id string) error {
	return s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.ReserveSeat(ctx, tx, id)
	})
}

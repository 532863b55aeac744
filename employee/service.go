package employee

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goride.io/booking/driver"
	"goride.io/booking/models"
)

type Service interface {
	IsAuthorized(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, email string) (*models.AuthorizedEmployee, error)
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

func (s *service) IsAuthorized(ctx context.Context, email string) (bool, error) {
	var authorized bool
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		authorized, err = s.repo.IsAuthorized(ctx, tx, email)
		return err
	}); err != nil {
		return false, fmt.Errorf("failed to check employee authorization: %w", err)
	}
	return authorized, nil
}

func (s *service) Add(ctx context.Context, email string) (*models.AuthorizedEmployee, error) {
	var employee *models.AuthorizedEmployee
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		employee, err = s.repo.Add(ctx, tx, email)
		return err
	}); err != nil {
		return nil, err
	}
	return employee, nil
}

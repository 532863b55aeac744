package checkout_session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goride.io/booking/driver"
	"goride.io/booking/models"
)

type Service interface {
	Upsert(ctx context.Context, session *models.PartialCheckoutSession) error
	GetByID(ctx context.Context, id string) (*models.CheckoutSession, error)
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

func (s *service) Upsert(ctx context.Context, session *models.PartialCheckoutSession) error {
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Upsert(ctx, tx, session)
	}); err != nil {
		return fmt.Errorf("failed to upsert checkout session: %w", err)
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*models.CheckoutSession, error) {
	var session *models.CheckoutSession
	if err := s.transactionManager.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		session, err = s.repo.GetByID(ctx, tx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return session, nil
}

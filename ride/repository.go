package ride

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/ember"
	"goflare.io/ignite"
	"goride.io/booking/driver"
	"goride.io/booking/models"
)

var (
	ErrRideNotFound = errors.New("ride not found")
	ErrNoSeats      = errors.New("no seats available")
)

type Repository interface {
	Create(ctx context.Context, tx pgx.Tx, ride *models.Ride) error
	GetByID(ctx context.Context, tx pgx.Tx, id string) (*models.Ride, error)
	Search(ctx context.Context, tx pgx.Tx, departureCity, arrivalCity string, departureDate time.Time) ([]*models.Ride, error)
	ReserveSeat(ctx context.Context, tx pgx.Tx, id string) error
}

type repository struct {
	conn        driver.PostgresPool
	logger      *zap.Logger
	cache       *ember.MultiCache
	poolManager ignite.Manager
}

func NewRepository(conn driver.PostgresPool, logger *zap.Logger, cache *ember.MultiCache, poolManager ignite.Manager) (Repository, error) {
	err := poolManager.RegisterPool(reflect.TypeOf(&models.Ride{}), ignite.Config[any]{
		InitialSize: 10,
		MaxSize:     100,
		MaxIdleTime: 10 * time.Minute,
		Factory: func() (any, error) {
			return models.NewRide(), nil
		},
		Reset: func(obj any) error {
			r := obj.(*models.Ride)
			*r = models.Ride{}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register ride pool: %w", err)
	}

	return &repository{
		conn:        conn,
		logger:      logger,
		cache:       cache,
		poolManager: poolManager,
	}, nil
}

func (r *repository) getFromPool(ctx context.Context) (*models.Ride, func(), error) {
	pool, err := r.poolManager.GetPool(reflect.TypeOf(&models.Ride{}))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get pool: %w", err)
	}

	objWrapper, err := pool.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get object from pool: %w", err)
	}

	ride := objWrapper.Object.(*models.Ride)
	release := func() {
		pool.Put(objWrapper)
	}

	return ride, release, nil
}

func (r *repository) Create(ctx context.Context, tx pgx.Tx, ride *models.Ride) error {
	const query = `
    INSERT INTO rides (id, driver_id, departure_city, arrival_city, departure_date, price, seats_available, created_at, updated_at)
    VALUES (@id, @driver_id, @departure_city, @arrival_city, @departure_date, @price, @seats_available, NOW(), NOW())
    `

	args := pgx.NamedArgs{
		"id":              ride.ID,
		"driver_id":       ride.DriverID,
		"departure_city":  ride.DepartureCity,
		"arrival_city":    ride.ArrivalCity,
		"departure_date":  ride.DepartureDate,
		"price":           ride.Price,
		"seats_available": ride.SeatsAvailable,
	}

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	cacheKey := fmt.Sprintf("ride:%s", ride.ID)
	if err := r.cache.Set(ctx, cacheKey, ride); err != nil {
		r.logger.Warn("Failed to cache new ride", zap.Error(err), zap.String("id", ride.ID))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tx pgx.Tx, id string) (*models.Ride, error) {
	cacheKey := fmt.Sprintf("ride:%s", id)

	ride, release, err := r.getFromPool(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	found, err := r.cache.Get(ctx, cacheKey, ride)
	if err != nil {
		r.logger.Warn("Failed to get ride from cache", zap.Error(err), zap.String("id", id))
	} else if found {
		return ride, nil
	}

	const query = `
    SELECT id, driver_id, departure_city, arrival_city, departure_date, price, seats_available, created_at, updated_at
    FROM rides
    WHERE id = @id
    `

	row := tx.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	if err = scanRide(row, ride); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRideNotFound
		}
		r.logger.Error("error getting ride", zap.Error(err))
		return nil, err
	}

	if err = r.cache.Set(ctx, cacheKey, ride); err != nil {
		r.logger.Warn("Failed to cache ride", zap.Error(err), zap.String("id", id))
	}

	return ride, nil
}

func (r *repository) Search(ctx context.Context, tx pgx.Tx, departureCity, arrivalCity string, departureDate time.Time) ([]*models.Ride, error) {
	const query = `
    SELECT id, driver_id, departure_city, arrival_city, departure_date, price, seats_available, created_at, updated_at
    FROM rides
    WHERE departure_city = @departure_city
      AND arrival_city = @arrival_city
      AND departure_date >= @departure_date
      AND seats_available > 0
    ORDER BY departure_date
    `

	args := pgx.NamedArgs{
		"departure_city": departureCity,
		"arrival_city":   arrivalCity,
		"departure_date": departureDate,
	}

	rows, err := tx.Query(ctx, query, args)
	if err != nil {
		r.logger.Error("error searching rides", zap.Error(err))
		return nil, fmt.Errorf("failed to search rides: %w", err)
	}
	defer rows.Close()

	var rides []*models.Ride
	for rows.Next() {
		ride := models.NewRide()
		if err = scanRide(rows, ride); err != nil {
			return nil, fmt.Errorf("failed to scan ride: %w", err)
		}
		rides = append(rides, ride)
	}

	return rides, rows.Err()
}

// ReserveSeat decrements seats_available, refusing to go below zero. The
// conditional update keeps concurrent bookings from overselling a ride.
func (r *repository) ReserveSeat(ctx context.Context, tx pgx.Tx, id string) error {
	const query = `
    UPDATE rides
    SET seats_available = seats_available - 1, updated_at = NOW()
    WHERE id = @id AND seats_available > 0
    `

	tag, err := tx.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to reserve seat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoSeats
	}

	cacheKey := fmt.Sprintf("ride:%s", id)
	if err = r.cache.Delete(ctx, cacheKey); err != nil {
		r.logger.Warn("Failed to delete ride from cache", zap.Error(err), zap.String("id", id))
	}

	return nil
}

func scanRide(row pgx.Row, ride *models.Ride) error {
	return row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.DepartureCity,
		&ride.ArrivalCity,
		&ride.DepartureDate,
		&ride.Price,
		&ride.SeatsAvailable,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
}

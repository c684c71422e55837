package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/homebuddy/apiserver/types"
)

// ServiceRepository handles persistence for the service catalog.
type ServiceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Get(ctx context.Context, id int) (types.Service, error) {
	const query = `
		SELECT id, name, price, description, created_at, updated_at
		FROM services
		WHERE id = $1`
	var service types.Service
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Price,
		&service.Description,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Service{}, ErrNotFound
		}
		return types.Service{}, err
	}
	return service, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]types.Service, error) {
	const query = `
		SELECT id, name, price, description, created_at, updated_at
		FROM services
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []types.Service
	for rows.Next() {
		var service types.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Price,
			&service.Description,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(1) FROM services`
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ServiceRepository) Create(ctx context.Context, service types.Service) (types.Service, error) {
	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	const query = `
		INSERT INTO services (name, price, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		service.Name,
		service.Price,
		service.Description,
		service.CreatedAt,
		service.UpdatedAt,
	).Scan(&service.ID); err != nil {
		return types.Service{}, err
	}
	return service, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service types.Service) (types.Service, error) {
	service.UpdatedAt = time.Now()

	const query = `
		UPDATE services
		SET name = $1,
			price = $2,
			description = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		service.Name,
		service.Price,
		service.Description,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return types.Service{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Service{}, err
	}
	if affected == 0 {
		return types.Service{}, ErrNotFound
	}
	return service, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM services WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

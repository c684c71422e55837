package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/homebuddy/apiserver/types"
)

// SupportRepository handles persistence for support tickets.
type SupportRepository struct {
	db *sql.DB
}

func NewSupportRepository(db *sql.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

const ticketColumns = `id, reference, user_id, subject, message, status, created_at, updated_at`

func (r *SupportRepository) Get(ctx context.Context, id int) (types.SupportTicket, error) {
	const query = `
		SELECT ` + ticketColumns + `
		FROM support_tickets
		WHERE id = $1`
	var ticket types.SupportTicket
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Reference,
		&ticket.UserID,
		&ticket.Subject,
		&ticket.Message,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.SupportTicket{}, ErrNotFound
		}
		return types.SupportTicket{}, err
	}
	return ticket, nil
}

func (r *SupportRepository) List(ctx context.Context) ([]types.SupportTicket, error) {
	const query = `
		SELECT ` + ticketColumns + `
		FROM support_tickets
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []types.SupportTicket
	for rows.Next() {
		var ticket types.SupportTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Reference,
			&ticket.UserID,
			&ticket.Subject,
			&ticket.Message,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *SupportRepository) Create(ctx context.Context, ticket types.SupportTicket) (types.SupportTicket, error) {
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	const query = `
		INSERT INTO support_tickets (reference, user_id, subject, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		ticket.Reference,
		ticket.UserID,
		ticket.Subject,
		ticket.Message,
		ticket.Status,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	).Scan(&ticket.ID); err != nil {
		return types.SupportTicket{}, err
	}
	return ticket, nil
}

func (r *SupportRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `
		UPDATE support_tickets
		SET status = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
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

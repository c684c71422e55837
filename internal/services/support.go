package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/homebuddy/apiserver/internal/notify"
	"github.com/homebuddy/apiserver/types"
)

// SupportRepository defines persistence operations for support tickets.
type SupportRepository interface {
	Get(ctx context.Context, id int) (types.SupportTicket, error)
	List(ctx context.Context) ([]types.SupportTicket, error)
	Create(ctx context.Context, ticket types.SupportTicket) (types.SupportTicket, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// SupportService encapsulates support-ticket use-cases.
type SupportService struct {
	repo     SupportRepository
	notifier *notify.Notifier
}

func NewSupportService(repo SupportRepository, notifier *notify.Notifier) *SupportService {
	return &SupportService{repo: repo, notifier: notifier}
}

func (s *SupportService) Get(ctx context.Context, id int) (types.SupportTicket, error) {
	return s.repo.Get(ctx, id)
}

func (s *SupportService) List(ctx context.Context) ([]types.SupportTicket, error) {
	return s.repo.List(ctx)
}

// Open creates a ticket with a fresh reference number in the open state.
func (s *SupportService) Open(ctx context.Context, ticket types.SupportTicket) (types.SupportTicket, error) {
	ticket.Reference = uuid.NewString()
	ticket.Status = types.TicketOpen

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return types.SupportTicket{}, err
	}

	s.notifier.TicketOpened(ctx, notify.TicketEvent{
		TicketID:   created.ID,
		Reference:  created.Reference,
		Subject:    created.Subject,
		OccurredAt: time.Now(),
	})
	return created, nil
}

// UpdateStatus marks a ticket open or closed.
func (s *SupportService) UpdateStatus(ctx context.Context, id int, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

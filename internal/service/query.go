package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/railtix/railtix/internal/store"
	"github.com/railtix/railtix/internal/ticket"
)

// QueryService answers route/date lookups. It is read-only and safe to
// re-invoke; ordering of results is delegated to the store's sort-key
// order.
type QueryService struct {
	store store.Store
	log   *zap.Logger
}

// NewQueryService creates a QueryService over the given store.
func NewQueryService(st store.Store, log *zap.Logger) *QueryService {
	return &QueryService{store: st, log: log}
}

// Tickets returns every ticket on the route for the given service date,
// ascending by departure time. All three arguments are mandatory;
// missing ones produce a *ValidationError without touching the store.
// A route/date with no tickets yields an empty slice, not an error.
func (s *QueryService) Tickets(ctx context.Context, origin, destination, serviceDate string) ([]ticket.Ticket, error) {
	if origin == "" || destination == "" || serviceDate == "" {
		return nil, newValidationError("origin, destination and date are required")
	}

	pk, prefix := ticket.QueryRange(origin, destination, serviceDate)
	tickets, err := s.store.QueryPrefix(ctx, pk, prefix)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}

	s.log.Debug("tickets queried",
		zap.String("route", pk),
		zap.String("date", serviceDate),
		zap.Int("count", len(tickets)),
	)
	return tickets, nil
}

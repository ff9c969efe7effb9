package ports

import "context"

// OriginTicketUpdate carries already-translated origin vocabulary values.
type OriginTicketUpdate struct {
	Provider   string
	ExternalID string
	Status     string
	Priority   string
	Assignee   string
}

// OriginUpdater pushes one translated ticket update back to the origin
// system. Implementations own auth, endpoints and timeouts.
type OriginUpdater interface {
	UpdateTicket(ctx context.Context, update OriginTicketUpdate) error
}

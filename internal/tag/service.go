// Package tag resolves scanned tokens to profile views. A token is the
// profile identifier itself; what the viewer sees depends on whether a
// session is active.
package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dialtag/dialtag/internal/mask"
	"github.com/dialtag/dialtag/internal/notification"
	"github.com/dialtag/dialtag/internal/profile"
	"github.com/dialtag/dialtag/internal/session"
)

// Service applies the visibility policy when resolving scanned tokens.
type Service struct {
	profiles *profile.Service
	sessions *session.Holder
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService creates a tag resolution service.
func NewService(profiles *profile.Service, sessions *session.Holder, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{profiles: profiles, sessions: sessions, notifier: notifier, logger: logger}
}

// Resolve looks up the profile behind a token and filters it for the current
// viewer. Any active session grants full access; whether that session belongs
// to the tag's owner is deliberately not checked, since the product's purpose
// is letting scanners call owners.
func (s *Service) Resolve(ctx context.Context, token string) (View, error) {
	p, err := s.profiles.GetByID(ctx, token)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return View{Kind: KindNotFound}, nil
		}
		return View{}, fmt.Errorf("resolve token: %w", err)
	}

	viewer, authenticated := s.sessions.Current()
	if !authenticated {
		view := View{
			Kind:          KindGuest,
			FullName:      p.FullName,
			ContactNumber: mask.Number(p.ContactNumber),
		}
		if p.AllowEmergencyCall {
			view.EmergencyNumber = mask.Number(p.EmergencyNumber)
		}
		return view, nil
	}

	view := View{
		Kind:          KindOwnerAccess,
		FullName:      p.FullName,
		ContactNumber: p.ContactNumber,
		Callable:      true,
	}
	if p.AllowEmergencyCall {
		view.EmergencyNumber = p.EmergencyNumber
	}

	s.notifyOwner(ctx, p, viewer)

	return view, nil
}

// notifyOwner tells the tag owner their details were opened with full access.
// Delivery problems never fail the resolution.
func (s *Service) notifyOwner(ctx context.Context, owner, viewer profile.Profile) {
	if s.notifier == nil || owner.ID == viewer.ID {
		return
	}
	msg := notification.Message{
		Kind:        notification.KindTagScanned,
		Destination: owner.ContactNumber,
		Body:        fmt.Sprintf("Your tag was scanned by %s", viewer.FullName),
	}
	if err := s.notifier.Send(ctx, msg); err != nil && s.logger != nil {
		s.logger.Warn("scan notification failed", "profile_id", owner.ID, "error", err)
	}
}

package tag

import (
	"context"
	"errors"
	"testing"

	"github.com/dialtag/dialtag/internal/logging"
	"github.com/dialtag/dialtag/internal/notification"
	"github.com/dialtag/dialtag/internal/profile"
	"github.com/dialtag/dialtag/internal/session"
)

type fixture struct {
	repo     profile.Repository
	profiles *profile.Service
	sessions *session.Holder
	svc      *Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	repo := profile.NewMemoryRepository()
	profiles := profile.NewService(repo, nil)
	sessions, err := session.NewHolder(context.Background(), session.NewMemoryStore(), logging.Discard())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	logger := logging.Discard()
	svc := NewService(profiles, sessions, notification.NewLoggerNotifier(logger), logger)
	return &fixture{repo: repo, profiles: profiles, sessions: sessions, svc: svc}
}

func (f *fixture) register(t *testing.T, contact string, allowEmergency bool) profile.Profile {
	t.Helper()
	p, err := f.profiles.Register(context.Background(), profile.RegisterInput{
		FullName:           "Ada Lovelace",
		ContactNumber:      contact,
		EmergencyNumber:    "5559876543",
		Secret:             "correct-horse",
		ConfirmSecret:      "correct-horse",
		AllowEmergencyCall: allowEmergency,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return p
}

func TestResolveUnknownToken(t *testing.T) {
	f := setup(t)

	view, err := f.svc.Resolve(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Kind != KindNotFound {
		t.Fatalf("expected not_found view, got %s", view.Kind)
	}
	if view.ContactNumber != "" || view.Callable {
		t.Fatalf("not_found view must expose nothing: %+v", view)
	}
}

func TestResolveAsGuest(t *testing.T) {
	f := setup(t)
	owner := f.register(t, "5551234567", true)

	view, err := f.svc.Resolve(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Kind != KindGuest {
		t.Fatalf("expected guest view, got %s", view.Kind)
	}
	if view.ContactNumber != "55XXXXXX67" {
		t.Fatalf("expected masked contact 55XXXXXX67, got %s", view.ContactNumber)
	}
	if view.EmergencyNumber != "55XXXXXX43" {
		t.Fatalf("expected masked emergency number, got %s", view.EmergencyNumber)
	}
	if view.Callable {
		t.Fatal("guest view must not offer a call action")
	}
}

func TestResolveWithActiveSession(t *testing.T) {
	f := setup(t)
	owner := f.register(t, "5551234567", true)
	ctx := context.Background()

	if err := f.sessions.Start(ctx, owner); err != nil {
		t.Fatalf("start session: %v", err)
	}

	view, err := f.svc.Resolve(ctx, owner.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Kind != KindOwnerAccess {
		t.Fatalf("expected owner_access view, got %s", view.Kind)
	}
	if view.ContactNumber != "5551234567" {
		t.Fatalf("expected unmasked contact, got %s", view.ContactNumber)
	}
	if view.EmergencyNumber != "5559876543" {
		t.Fatalf("expected unmasked emergency number, got %s", view.EmergencyNumber)
	}
	if !view.Callable {
		t.Fatal("owner access view must offer a call action")
	}
}

func TestResolveAnyAuthenticatedViewerGetsFullAccess(t *testing.T) {
	f := setup(t)
	owner := f.register(t, "5551234567", true)
	other := f.register(t, "5557654321", false)
	ctx := context.Background()

	if err := f.sessions.Start(ctx, other); err != nil {
		t.Fatalf("start session: %v", err)
	}

	view, err := f.svc.Resolve(ctx, owner.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Kind != KindOwnerAccess || view.ContactNumber != "5551234567" {
		t.Fatalf("any authenticated viewer gets full access, got %+v", view)
	}
}

func TestEmergencyNumberNeverShownWhenDisallowed(t *testing.T) {
	f := setup(t)
	owner := f.register(t, "5551234567", false)
	ctx := context.Background()

	guest, err := f.svc.Resolve(ctx, owner.ID)
	if err != nil {
		t.Fatalf("resolve guest: %v", err)
	}
	if guest.EmergencyNumber != "" {
		t.Fatalf("guest view leaked emergency number: %s", guest.EmergencyNumber)
	}

	if err := f.sessions.Start(ctx, owner); err != nil {
		t.Fatalf("start session: %v", err)
	}
	full, err := f.svc.Resolve(ctx, owner.ID)
	if err != nil {
		t.Fatalf("resolve owner: %v", err)
	}
	if full.EmergencyNumber != "" {
		t.Fatalf("owner access view leaked emergency number: %s", full.EmergencyNumber)
	}
}

func TestSimulatedSource(t *testing.T) {
	f := setup(t)
	src := NewSimulatedSource(f.repo)
	ctx := context.Background()

	if _, err := src.Next(ctx); !errors.Is(err, ErrNoTokenFound) {
		t.Fatalf("expected ErrNoTokenFound on empty store, got %v", err)
	}

	first := f.register(t, "5551234567", true)
	f.register(t, "5557654321", true)

	token, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if token != first.ID {
		t.Fatalf("expected earliest profile id %s, got %s", first.ID, token)
	}
}

// End-to-end walk through the register → duplicate → login → resolve →
// logout lifecycle.
func TestScanLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	owner := f.register(t, "5551234567", true)

	dup := profile.RegisterInput{
		FullName:      "Grace Hopper",
		ContactNumber: "5551234567",
		Secret:        "hunter22",
		ConfirmSecret: "hunter22",
	}
	if _, err := f.profiles.Register(ctx, dup); !errors.Is(err, profile.ErrDuplicateContact) {
		t.Fatalf("expected ErrDuplicateContact, got %v", err)
	}
	all, err := f.repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one stored profile, got %d", len(all))
	}

	authed, err := f.profiles.Authenticate(ctx, "5551234567", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := f.sessions.Start(ctx, authed); err != nil {
		t.Fatalf("start session: %v", err)
	}

	view, err := f.svc.Resolve(ctx, owner.ID)
	if err != nil {
		t.Fatalf("resolve logged in: %v", err)
	}
	if view.Kind != KindOwnerAccess || view.ContactNumber != "5551234567" {
		t.Fatalf("expected unmasked owner access view, got %+v", view)
	}

	if err := f.sessions.End(ctx); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if _, active := f.sessions.Current(); active {
		t.Fatal("expected cleared session after logout")
	}

	view, err = f.svc.Resolve(ctx, owner.ID)
	if err != nil {
		t.Fatalf("resolve logged out: %v", err)
	}
	if view.Kind != KindGuest || view.ContactNumber != "55XXXXXX67" {
		t.Fatalf("expected masked guest view, got %+v", view)
	}
}

package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"lab-equipment-maintenance/internal/domain/access"
)

type testRepo struct {
	byID map[string]Notification
}

func newTestRepo(items ...Notification) *testRepo {
	r := &testRepo{byID: map[string]Notification{}}
	for _, n := range items {
		r.byID[n.ID] = n
	}
	return r
}

func (r *testRepo) Create(_ context.Context, n Notification) error {
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) Update(_ context.Context, n Notification) error {
	if _, ok := r.byID[n.ID]; !ok {
		return errors.New("not found")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errors.New("not found")
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return Notification{}, errors.New("not found")
	}
	return n, nil
}

func (r *testRepo) List(_ context.Context) ([]Notification, error) {
	out := make([]Notification, 0, len(r.byID))
	for _, n := range r.byID {
		out = append(out, n)
	}
	return out, nil
}

var (
	adminActor = access.Actor{ID: "admin-1", Role: access.RoleAdmin}
	techActor  = access.Actor{ID: "tech-1", Role: access.RoleEquipmentManager}
)

func sample() Notification {
	return Notification{
		ID:        "nt-1",
		Kind:      KindWarning,
		Message:   "Mantención próxima: Microscopio TEM",
		Timestamp: time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestNotificationsList_RequiresAuthentication(t *testing.T) {
	svc := NewService(newTestRepo(sample()))
	ctx := context.Background()

	if _, err := svc.List(ctx, access.Actor{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous actor, got %v", err)
	}

	got, err := svc.List(ctx, techActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
}

func TestNotificationsMarkRead_Idempotent(t *testing.T) {
	svc := NewService(newTestRepo(sample()))
	ctx := context.Background()

	n, err := svc.MarkRead(ctx, techActor, "nt-1")
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if !n.IsRead {
		t.Fatal("expected IsRead after mark")
	}

	// marcar de nuevo no es error
	again, err := svc.MarkRead(ctx, techActor, "nt-1")
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if !again.IsRead {
		t.Fatal("expected IsRead to stay set")
	}

	if _, err := svc.MarkRead(ctx, techActor, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotificationsDelete_AdminOnly(t *testing.T) {
	svc := NewService(newTestRepo(sample()))
	ctx := context.Background()

	if err := svc.Delete(ctx, techActor, "nt-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, adminActor, "nt-1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(ctx, adminActor, "nt-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

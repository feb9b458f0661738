package activity

import (
	"context"
	"testing"
	"time"

	"shopsight/domain"
)

type fakeActivityRepo struct {
	created []domain.ActivityEvent
	events  []domain.ActivityEvent

	lastOffset int
	lastLimit  int
	lastCutoff time.Time
	deleted    int64
}

func (f *fakeActivityRepo) Create(ctx context.Context, event *domain.ActivityEvent) error {
	f.created = append(f.created, *event)
	return nil
}

func (f *fakeActivityRepo) FindByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.ActivityEvent, error) {
	f.lastOffset = offset
	f.lastLimit = limit
	if offset >= len(f.events) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

func (f *fakeActivityRepo) CountByProduct(ctx context.Context, productID uint64) (int64, error) {
	var n int64
	for _, e := range f.events {
		if e.ProductID != nil && *e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeActivityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	return f.deleted, nil
}

func intPtr(v int) *int       { return &v }
func u64Ptr(v uint64) *uint64 { return &v }

func TestRecord_ValidEvent(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo, 365)

	err := svc.Record(context.Background(), &domain.ActivityEvent{
		UserID:    7,
		ProductID: u64Ptr(3),
		Action:    domain.ActionView,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("got %d created events, want 1", len(repo.created))
	}
}

func TestRecord_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		event domain.ActivityEvent
	}{
		{"missing user", domain.ActivityEvent{Action: domain.ActionView}},
		{"unknown action", domain.ActivityEvent{UserID: 7, Action: "hover"}},
		{"stay without duration", domain.ActivityEvent{UserID: 7, Action: domain.ActionStay}},
		{"negative duration", domain.ActivityEvent{UserID: 7, Action: domain.ActionStay, DurationSeconds: intPtr(-30)}},
	}

	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo, 365)

	for _, tc := range cases {
		ev := tc.event
		if err := svc.Record(context.Background(), &ev); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
	if len(repo.created) != 0 {
		t.Fatalf("rejected events must not be persisted, got %d", len(repo.created))
	}
}

func TestListByUser_Pagination(t *testing.T) {
	repo := &fakeActivityRepo{}
	for i := 0; i < 45; i++ {
		repo.events = append(repo.events, domain.ActivityEvent{UserID: 7, Action: domain.ActionView})
	}
	svc := NewActivityService(repo, 365)

	events, err := svc.ListByUser(context.Background(), 7, 3, 20)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if repo.lastOffset != 40 || repo.lastLimit != 20 {
		t.Fatalf("offset/limit = %d/%d, want 40/20", repo.lastOffset, repo.lastLimit)
	}
	if len(events) != 5 {
		t.Fatalf("got %d events on last page, want 5", len(events))
	}
}

func TestListByUser_Defaults(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo, 365)

	if _, err := svc.ListByUser(context.Background(), 7, 0, 0); err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if repo.lastOffset != 0 || repo.lastLimit != 20 {
		t.Fatalf("offset/limit = %d/%d, want 0/20", repo.lastOffset, repo.lastLimit)
	}

	if _, err := svc.ListByUser(context.Background(), 7, 1, 5000); err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Fatalf("limit = %d, want clamped to 100", repo.lastLimit)
	}
}

func TestListByUser_InvalidUser(t *testing.T) {
	svc := NewActivityService(&fakeActivityRepo{}, 365)

	if _, err := svc.ListByUser(context.Background(), 0, 1, 20); err == nil {
		t.Fatal("expected error for user id 0")
	}
}

func TestPurge_CutoffFromRetention(t *testing.T) {
	repo := &fakeActivityRepo{deleted: 12}
	svc := NewActivityService(repo, 90)

	deleted, err := svc.Purge(context.Background())
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if deleted != 12 {
		t.Fatalf("deleted = %d, want 12", deleted)
	}

	wantCutoff := time.Now().AddDate(0, 0, -90)
	diff := repo.lastCutoff.Sub(wantCutoff)
	if diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff %v too far from expected %v", repo.lastCutoff, wantCutoff)
	}
}

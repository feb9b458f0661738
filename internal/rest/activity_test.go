package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopsight/domain"

	"github.com/labstack/echo/v4"
)

type fakeActivityService struct {
	listedUserID uint
	listCalls    int
}

func (f *fakeActivityService) Record(ctx context.Context, event *domain.ActivityEvent) error {
	return nil
}

func (f *fakeActivityService) ListByUser(ctx context.Context, userID uint, page, limit int) ([]domain.ActivityEvent, error) {
	f.listedUserID = userID
	f.listCalls++
	return []domain.ActivityEvent{}, nil
}

func (f *fakeActivityService) CountByProduct(ctx context.Context, productID uint64) (int64, error) {
	return 0, nil
}

func (f *fakeActivityService) Purge(ctx context.Context) (int64, error) {
	return 0, nil
}

func listRequest(target string, userID uint, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, rec
}

func TestActivityList_OwnHistoryByDefault(t *testing.T) {
	svc := &fakeActivityService{}
	h := NewActivityHandler(svc)

	c, rec := listRequest("/api/v1/activities", 7, "customer")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.listedUserID != 7 {
		t.Fatalf("listed user = %d, want caller's own id 7", svc.listedUserID)
	}
}

func TestActivityList_AdminListsOtherUser(t *testing.T) {
	svc := &fakeActivityService{}
	h := NewActivityHandler(svc)

	c, rec := listRequest("/api/v1/activities?user_id=42", 7, "admin")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.listedUserID != 42 {
		t.Fatalf("listed user = %d, want 42", svc.listedUserID)
	}
}

func TestActivityList_NonAdminCannotListOthers(t *testing.T) {
	svc := &fakeActivityService{}
	h := NewActivityHandler(svc)

	c, rec := listRequest("/api/v1/activities?user_id=42", 7, "customer")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if svc.listCalls != 0 {
		t.Fatalf("service must not be called on forbidden request, got %d calls", svc.listCalls)
	}
}

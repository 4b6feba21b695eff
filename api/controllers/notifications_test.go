package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedSalahALghzaly/lats-go/api/middleware"
	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

type testNotificationService struct {
	listFn        func(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	unreadCountFn func(ctx context.Context, userID string) (int64, error)
	markReadFn    func(ctx context.Context, userID, id string) error
	markAllFn     func(ctx context.Context, userID string) error
	deleteFn      func(ctx context.Context, userID, id string) error
}

func (s *testNotificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (s *testNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if s.unreadCountFn != nil {
		return s.unreadCountFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, id)
	}
	return nil
}

func (s *testNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if s.markAllFn != nil {
		return s.markAllFn(ctx, userID)
	}
	return nil
}

func (s *testNotificationService) Delete(ctx context.Context, userID, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withTestIdentity(req *http.Request, userID string, role enums.Role) *http.Request {
	identity := &auth.Identity{
		User: &models.User{ID: userID, Email: userID + "@example.com", Name: "Test User"},
		Role: role,
	}
	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestListNotificationsScopedToActor(t *testing.T) {
	svc := &testNotificationService{
		listFn: func(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
			if userID != "usr_1" {
				t.Fatalf("unexpected user %s", userID)
			}
			return []models.Notification{{ID: "ntf_1", UserID: userID, Title: "Order update"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req = withTestIdentity(req, "usr_1", enums.RoleUser)

	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []models.Notification `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != "ntf_1" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestUnreadNotificationCount(t *testing.T) {
	svc := &testNotificationService{
		unreadCountFn: func(ctx context.Context, userID string) (int64, error) {
			return 4, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	req = withTestIdentity(req, "usr_1", enums.RoleUser)

	resp := httptest.NewRecorder()
	UnreadNotificationCount(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["unread"] != 4 {
		t.Fatalf("unexpected count %d", envelope.Data["unread"])
	}
}

func TestMarkNotificationReadPassesOwnerAndID(t *testing.T) {
	called := false
	svc := &testNotificationService{
		markReadFn: func(ctx context.Context, userID, id string) error {
			called = true
			if userID != "usr_1" || id != "ntf_9" {
				t.Fatalf("unexpected args %s %s", userID, id)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/ntf_9/read", nil)
	req = withTestIdentity(req, "usr_1", enums.RoleUser)
	req = withURLParam(req, "id", "ntf_9")

	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	svc := &testNotificationService{
		markReadFn: func(ctx context.Context, userID, id string) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/ntf_missing/read", nil)
	req = withTestIdentity(req, "usr_1", enums.RoleUser)
	req = withURLParam(req, "id", "ntf_missing")

	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error code %s", envelope.Error.Code)
	}
}

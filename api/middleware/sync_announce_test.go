package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordingBroadcaster struct {
	payloads []any
}

func (b *recordingBroadcaster) Broadcast(payload any) {
	b.payloads = append(b.payloads, payload)
}

func TestSyncAnnounceBroadcastsOnSuccess(t *testing.T) {
	hub := &recordingBroadcaster{}
	handler := SyncAnnounce(hub, "products")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/products", nil))

	if len(hub.payloads) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(hub.payloads))
	}
	payload, ok := hub.payloads[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload type %T", hub.payloads[0])
	}
	if payload["type"] != "sync" {
		t.Fatalf("unexpected payload type field %v", payload["type"])
	}
	tables, ok := payload["tables"].([]string)
	if !ok || len(tables) != 1 || tables[0] != "products" {
		t.Fatalf("unexpected tables %v", payload["tables"])
	}
}

func TestSyncAnnounceSilentOnFailure(t *testing.T) {
	hub := &recordingBroadcaster{}
	handler := SyncAnnounce(hub, "products")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/products", nil))

	if len(hub.payloads) != 0 {
		t.Fatalf("expected no broadcast, got %d", len(hub.payloads))
	}
}

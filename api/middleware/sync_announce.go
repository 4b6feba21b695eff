package middleware

import "net/http"

// Broadcaster fans a payload out to every realtime connection.
type Broadcaster interface {
	Broadcast(payload any)
}

// SyncAnnounce tells connected clients which tables changed after a
// successful mutation so they can schedule a delta pull.
func SyncAnnounce(hub Broadcaster, tables ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if hub != nil && rec.status >= 200 && rec.status < 300 {
				hub.Broadcast(map[string]any{
					"type":   "sync",
					"tables": tables,
				})
			}
		})
	}
}

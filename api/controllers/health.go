package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/redis"
)

// Root identifies the API to anyone probing the base path.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"service": "lats-go", "message": "El-Ghazaly Auto Parts API"})
	}
}

// Health reports process liveness and database reachability.
func Health(client *db.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		dbStatus := "ok"
		if client != nil {
			if err := client.Ping(r.Context()); err != nil {
				status = "degraded"
				dbStatus = "unreachable"
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status":   status,
			"database": dbStatus,
		})
	}
}

// HealthLive answers as long as the process serves requests.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady reports 503 until every backing store answers a ping.
func HealthReady(client *db.Client, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		dbStatus, cacheStatus := "ok", "ok"
		if client != nil {
			if pingErr := client.Ping(r.Context()); pingErr != nil {
				dbStatus = "unreachable"
				err = multierr.Append(err, pingErr)
			}
		}
		if cache != nil {
			if pingErr := cache.Ping(r.Context()); pingErr != nil {
				cacheStatus = "unreachable"
				err = multierr.Append(err, pingErr)
			}
		}

		payload := map[string]string{
			"status":   "ready",
			"database": dbStatus,
			"redis":    cacheStatus,
		}
		if err != nil {
			payload["status"] = "not_ready"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

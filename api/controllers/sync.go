package controllers

import (
	"context"
	"net/http"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/api/validators"
	syncsvc "github.com/AhmedSalahALghzaly/lats-go/internal/sync"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// SyncService is the slice of the delta-sync service the handler uses.
type SyncService interface {
	Pull(ctx context.Context, watermarkMillis int64, tables []string) (*syncsvc.PullResult, error)
}

type pullRequest struct {
	LastPulledAt int64    `json:"last_pulled_at" validate:"min=0"`
	Tables       []string `json:"tables" validate:"omitempty,dive,required"`
}

// SyncPull returns per-table created/updated/deleted rows since the
// client's watermark, plus the server timestamp for the next pull.
func SyncPull(svc SyncService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload pullRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Pull(r.Context(), payload.LastPulledAt, payload.Tables)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

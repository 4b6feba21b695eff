package controllers

import (
	"net/http"
	"time"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/internal/analytics"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// parseDay accepts a calendar date or a full RFC 3339 timestamp.
func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// AnalyticsOverview returns the owner dashboard numbers, optionally
// bounded by ?from= and ?to= dates.
func AnalyticsOverview(svc *analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var window analytics.Range
		if raw := r.URL.Query().Get("from"); raw != "" {
			from, err := parseDay(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date"))
				return
			}
			window.From = &from
		}
		if raw := r.URL.Query().Get("to"); raw != "" {
			to, err := parseDay(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date"))
				return
			}
			// A bare date bound is inclusive of that whole day.
			if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
				to = to.Add(24*time.Hour - time.Nanosecond)
			}
			window.To = &to
		}

		overview, err := svc.Overview(r.Context(), window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

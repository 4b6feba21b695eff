package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
)

// ExchangeResult is the profile returned by the external auth broker for
// a one-time session id.
type ExchangeResult struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// SessionExchanger swaps a one-time session id for a user profile.
type SessionExchanger interface {
	Exchange(ctx context.Context, sessionID string) (*ExchangeResult, error)
}

// HTTPExchanger calls the external auth broker over HTTP. The broker is
// the only component that sees provider credentials; this service only
// ever handles the opaque session token it mints.
type HTTPExchanger struct {
	url    string
	client *http.Client
}

func NewHTTPExchanger(url string, timeout time.Duration) *HTTPExchanger {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPExchanger{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (e *HTTPExchanger) Exchange(ctx context.Context, sessionID string) (*ExchangeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building exchange request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "auth broker unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session id rejected")
	}

	var result ExchangeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding exchange response")
	}
	if result.Email == "" || result.SessionToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "incomplete exchange response")
	}
	return &result, nil
}

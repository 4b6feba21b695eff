package auth

import (
	"context"
	"time"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// RoleResolver computes the effective role for an email.
type RoleResolver interface {
	Resolve(ctx context.Context, email string) (enums.Role, error)
}

// Identity is the authenticated actor attached to a request.
type Identity struct {
	User *models.User
	Role enums.Role
}

type Service struct {
	repo      *Repo
	exchanger SessionExchanger
	resolver  RoleResolver
	logg      *logger.Logger

	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(repo *Repo, exchanger SessionExchanger, resolver RoleResolver, logg *logger.Logger, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &Service{
		repo:       repo,
		exchanger:  exchanger,
		resolver:   resolver,
		logg:       logg,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Login swaps a one-time session id for a durable session of our own.
type LoginResult struct {
	User      *models.User
	Role      enums.Role
	Token     string
	ExpiresAt time.Time
}

func (s *Service) Login(ctx context.Context, sessionID string) (*LoginResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	profile, err := s.exchanger.Exchange(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UpsertUser(ctx, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting user")
	}

	expiresAt := s.now().Add(s.sessionTTL)
	if _, err := s.repo.CreateSession(ctx, user.ID, profile.SessionToken, expiresAt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting session")
	}

	role, err := s.resolver.Resolve(ctx, user.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving role")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "session established")

	return &LoginResult{User: user, Role: role, Token: profile.SessionToken, ExpiresAt: expiresAt}, nil
}

// Authenticate maps an opaque token to an identity. An unknown or expired
// token yields nil identity with no error so callers fall back to guest.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.repo.SessionByToken(ctx, token)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading session")
	}
	if session.Expired(s.now()) {
		return nil, nil
	}

	user, err := s.repo.UserByID(ctx, session.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	role, err := s.resolver.Resolve(ctx, user.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving role")
	}

	return &Identity{User: user, Role: role}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting session")
	}
	return nil
}

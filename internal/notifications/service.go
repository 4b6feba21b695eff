package notifications

import (
	"context"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// Pusher delivers realtime copies of persisted notifications. Push
// failures are logged and swallowed, persistence is the source of truth.
type Pusher interface {
	SendToUser(userID string, payload any)
}

type Service struct {
	repo   *Repo
	pusher Pusher
	logg   *logger.Logger
}

func NewService(repo *Repo, pusher Pusher, logg *logger.Logger) *Service {
	return &Service{repo: repo, pusher: pusher, logg: logg}
}

// Notify persists a notification and pushes it over the realtime channel.
func (s *Service) Notify(ctx context.Context, userID string, typ enums.NotificationType, title, message, refID string) error {
	notification := models.Notification{
		ID:      models.NewID("ntf"),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		RefID:   refID,
	}
	if err := s.repo.Create(ctx, &notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting notification")
	}

	if s.pusher != nil {
		s.pusher.SendToUser(userID, map[string]any{
			"type": "notification",
			"data": notification,
		})
	}
	return nil
}

// NotifyByEmail addresses the notification to a user by email. Unknown
// recipients are skipped silently so callers never fail on a missing
// account.
func (s *Service) NotifyByEmail(ctx context.Context, email string, typ enums.NotificationType, title, message, refID string) error {
	userID, err := s.repo.UserIDByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			s.logg.Warn(s.logg.WithField(ctx, "recipient", email), "notification recipient has no account")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving recipient")
	}
	return s.Notify(ctx, userID, typ, title, message, refID)
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	items, err := s.repo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing notifications")
	}
	return items, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting notifications")
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	affected, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking notification read")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking notifications read")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting notification")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

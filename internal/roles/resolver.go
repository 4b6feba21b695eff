package roles

import (
	"context"
	"strings"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

// Resolver computes the effective role for an email on every request.
// Roles live in the membership tables only, so revoking a partner or
// admin takes effect on their next call without touching sessions.
type Resolver struct {
	db         *db.Client
	ownerEmail string
}

func NewResolver(client *db.Client, ownerEmail string) *Resolver {
	return &Resolver{
		db:         client,
		ownerEmail: strings.ToLower(strings.TrimSpace(ownerEmail)),
	}
}

// Resolve returns the highest role the email qualifies for.
func (r *Resolver) Resolve(ctx context.Context, email string) (enums.Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return enums.RoleGuest, nil
	}

	if normalized == r.ownerEmail {
		return enums.RoleOwner, nil
	}

	var count int64
	if err := r.db.Gorm(ctx).Model(&models.Partner{}).
		Where("LOWER(email) = ?", normalized).Count(&count).Error; err != nil {
		return enums.RoleUser, err
	}
	if count > 0 {
		return enums.RolePartner, nil
	}

	if err := r.db.Gorm(ctx).Model(&models.Admin{}).
		Where("LOWER(email) = ?", normalized).Count(&count).Error; err != nil {
		return enums.RoleUser, err
	}
	if count > 0 {
		return enums.RoleAdmin, nil
	}

	if err := r.db.Gorm(ctx).Model(&models.Subscriber{}).
		Where("LOWER(email) = ?", normalized).Count(&count).Error; err != nil {
		return enums.RoleUser, err
	}
	if count > 0 {
		return enums.RoleSubscriber, nil
	}

	return enums.RoleUser, nil
}

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
)

type Repo struct {
	db *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{db: client}
}

// UpsertUser finds the user by email or creates one, refreshing the
// profile fields on every login.
func (r *Repo) UpsertUser(ctx context.Context, email, name, picture string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := r.db.Gorm(ctx).Where("LOWER(email) = ?", normalized).First(&user).Error
	if err == nil {
		user.Name = name
		user.Picture = picture
		if err := r.db.Gorm(ctx).Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !db.IsNotFound(err) {
		return nil, err
	}

	user = models.User{
		ID:      models.NewID("usr"),
		Email:   normalized,
		Name:    name,
		Picture: picture,
	}
	if err := r.db.Gorm(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repo) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) (*models.Session, error) {
	session := models.Session{
		ID:        models.NewID("ses"),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.Gorm(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *Repo) SessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.Gorm(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *Repo) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.Gorm(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repo) DeleteSession(ctx context.Context, token string) error {
	return r.db.Gorm(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

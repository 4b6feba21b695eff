package comments

import (
	"context"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// ProductChecker verifies the commented product exists.
type ProductChecker interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

type Service struct {
	db       *db.Client
	products ProductChecker
	logg     *logger.Logger
}

func NewService(client *db.Client, products ProductChecker, logg *logger.Logger) *Service {
	return &Service{db: client, products: products, logg: logg}
}

type Input struct {
	ProductID string
	Text      string
	Rating    int
}

func (s *Service) Create(ctx context.Context, userID, userName string, input Input) (*models.Comment, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if _, err := s.products.Get(ctx, input.ProductID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        models.NewID("cmt"),
		UserID:    userID,
		ProductID: input.ProductID,
		UserName:  userName,
		Text:      input.Text,
		Rating:    input.Rating,
	}
	if err := s.db.Gorm(ctx).Create(&comment).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating comment")
	}
	return &comment, nil
}

func (s *Service) ListForProduct(ctx context.Context, productID string) ([]models.Comment, error) {
	var items []models.Comment
	err := s.db.Gorm(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing comments")
	}
	return items, nil
}

// Delete removes a comment. The author may delete their own; staff may
// delete any.
func (s *Service) Delete(ctx context.Context, id, callerID string, callerRole enums.Role) error {
	var comment models.Comment
	err := s.db.Gorm(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading comment")
	}

	if comment.UserID != callerID && !callerRole.AtLeast(enums.RoleAdmin) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "comment belongs to another user")
	}

	if err := s.db.Gorm(ctx).Delete(&comment).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting comment")
	}
	return nil
}

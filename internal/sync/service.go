package sync

import (
	"context"
	"time"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// TableDelta carries one table's changes since the client watermark.
type TableDelta struct {
	Created []any    `json:"created"`
	Updated []any    `json:"updated"`
	Deleted []string `json:"deleted"`
}

// PullResult is the full delta response. Timestamp is the server clock
// captured before any reads, so the next pull can never miss a write that
// happened mid-pull.
type PullResult struct {
	Timestamp int64                 `json:"timestamp"`
	Changes   map[string]TableDelta `json:"changes"`
}

type puller func(ctx context.Context, client *db.Client, watermark time.Time) (TableDelta, error)

// pullRows implements the watermark split for one model:
// created rows appeared after the watermark, updated rows existed at the
// watermark but changed since, deleted ids are tombstones newer than it.
func pullRows[T any](tableName string) puller {
	return func(ctx context.Context, client *db.Client, watermark time.Time) (TableDelta, error) {
		delta := TableDelta{Created: []any{}, Updated: []any{}, Deleted: []string{}}

		var created []T
		err := client.Gorm(ctx).
			Where("created_at > ?", watermark).
			Find(&created).Error
		if err != nil {
			return delta, err
		}
		for _, row := range created {
			delta.Created = append(delta.Created, row)
		}

		var updated []T
		err = client.Gorm(ctx).
			Where("updated_at > ? AND created_at <= ?", watermark, watermark).
			Find(&updated).Error
		if err != nil {
			return delta, err
		}
		for _, row := range updated {
			delta.Updated = append(delta.Updated, row)
		}

		var deletedIDs []string
		err = client.Gorm(ctx).Unscoped().
			Table(tableName).
			Where("deleted_at IS NOT NULL AND deleted_at > ?", watermark).
			Pluck("id", &deletedIDs).Error
		if err != nil {
			return delta, err
		}
		delta.Deleted = deletedIDs

		return delta, nil
	}
}

var registry = map[string]puller{
	"car_brands":     pullRows[models.CarBrand]("car_brands"),
	"car_models":     pullRows[models.CarModel]("car_models"),
	"product_brands": pullRows[models.ProductBrand]("product_brands"),
	"categories":     pullRows[models.Category]("categories"),
	"products":       pullRows[models.Product]("products"),
	"suppliers":      pullRows[models.Supplier]("suppliers"),
	"distributors":   pullRows[models.Distributor]("distributors"),
}

// DefaultTables is the sync scope when a pull names no tables.
func DefaultTables() []string {
	return []string{
		"car_brands", "car_models", "product_brands",
		"categories", "products", "suppliers", "distributors",
	}
}

type Service struct {
	db   *db.Client
	logg *logger.Logger
	now  func() time.Time
}

func NewService(client *db.Client, logg *logger.Logger) *Service {
	return &Service{db: client, logg: logg, now: time.Now}
}

// Pull computes deltas for the requested tables since the watermark,
// given in epoch milliseconds. A zero watermark returns everything.
func (s *Service) Pull(ctx context.Context, watermarkMillis int64, tables []string) (*PullResult, error) {
	if watermarkMillis < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "watermark must not be negative")
	}
	if len(tables) == 0 {
		tables = DefaultTables()
	}
	for _, table := range tables {
		if _, ok := registry[table]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sync table").
				WithDetails(map[string]string{"table": table})
		}
	}

	// Capture the response timestamp before reading so concurrent writes
	// land after it and surface on the next pull.
	timestamp := s.now()
	watermark := time.UnixMilli(watermarkMillis).UTC()

	result := PullResult{
		Timestamp: timestamp.UnixMilli(),
		Changes:   make(map[string]TableDelta, len(tables)),
	}
	for _, table := range tables {
		delta, err := registry[table](ctx, s.db, watermark)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "pulling table delta")
		}
		result.Changes[table] = delta
	}
	return &result, nil
}

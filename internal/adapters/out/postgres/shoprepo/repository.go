package shoprepo

import (
	"context"
	"errors"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/core/domain/model/shop"
	"deliveryplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShopRepository implements ports.ShopRepository using GORM.
type GormShopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShopRepository creates a repository on db.
func NewGormShopRepository(db *gorm.DB, tracker aggregateTracker) *GormShopRepository {
	return &GormShopRepository{db: db, tracker: tracker}
}

// Add saves a new shop.
func (r *GormShopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shop by ID.
func (r *GormShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every shop ordered by name.
func (r *GormShopRepository) GetAll(ctx context.Context) ([]*shop.Shop, error) {
	var dtos []ShopDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shops := make([]*shop.Shop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, nil
}

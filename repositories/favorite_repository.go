package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davidjirca/dreamhome/domain"
)

// FavoriteRepository defines the data-access contract for favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Get(ctx context.Context, userID, propertyID uuid.UUID) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)
	Delete(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	AdjustFavoriteCount(ctx context.Context, propertyID uuid.UUID, delta int) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) Get(ctx context.Context, userID, propertyID uuid.UUID) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AdjustFavoriteCount keeps the denormalized counter on the property in
// step with favorite rows. The counter never goes below zero.
func (r *favoriteRepository) AdjustFavoriteCount(ctx context.Context, propertyID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", propertyID).
		UpdateColumn("favorite_count", gorm.Expr("GREATEST(favorite_count + ?, 0)", delta)).
		Error
}

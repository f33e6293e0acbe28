package favorites

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Remote is the source of truth for favorite rows. The local store only
// mirrors what these operations confirm.
type Remote interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

// GormRemote implements Remote against the relational store
type GormRemote struct {
	db *gorm.DB
}

// NewGormRemote creates a database-backed remote
func NewGormRemote(db *gorm.DB) *GormRemote {
	return &GormRemote{db: db}
}

// List returns the product ids favorited by a user
func (r *GormRemote) List(ctx context.Context, userID string) ([]string, error) {
	var productIDs []string
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("product_id", &productIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return productIDs, nil
}

// Add inserts a favorite row for the pair
func (r *GormRemote) Add(ctx context.Context, userID, productID string) error {
	row := Favorite{
		UserID:    userID,
		ProductID: productID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite row for the pair. Deleting a pair that is
// already gone is not an error; the end state is the same.
func (r *GormRemote) Remove(ctx context.Context, userID, productID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

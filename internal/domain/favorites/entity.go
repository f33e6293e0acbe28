package favorites

import "time"

// Favorite is one (user, product) row in the remote store. Existence is
// the whole payload; the pair is unique.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Favorite) TableName() string {
	return "favorites"
}

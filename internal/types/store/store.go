package store

import (
	"time"

	"github.com/google/uuid"
)

// Item is an avatar cosmetic purchasable with gems.
type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ItemType    string    `json:"item_type" db:"item_type"` // hat, outfit, background, frame
	ImageURL    string    `json:"image_url" db:"image_url"`
	Price       int       `json:"price" db:"price"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

type Purchase struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ItemID        uuid.UUID `json:"item_id"`
	PricePaid     int       `json:"price_paid"`
	GemsRemaining int       `json:"gems_remaining"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

type PurchaseRequest struct {
	ItemID string `json:"itemId"`
}

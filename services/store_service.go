package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journeysAPI/internal/types/store"
)

// StoreService sells avatar cosmetics for gems.
type StoreService struct {
	db *pgxpool.Pool
}

func NewStoreService(db *pgxpool.Pool) *StoreService {
	return &StoreService{db: db}
}

// GetStore returns active items grouped by item type for the store screen.
func (s *StoreService) GetStore(ctx context.Context) (map[string][]*store.Item, error) {
	query := `
	SELECT id, name, description, item_type, image_url, price, is_active
	FROM store_items
	WHERE is_active = TRUE
	ORDER BY item_type, price
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]*store.Item)
	for rows.Next() {
		var item store.Item
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.ItemType,
			&item.ImageURL,
			&item.Price,
			&item.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store item: %w", err)
		}
		items[item.ItemType] = append(items[item.ItemType], &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating store items: %w", err)
	}

	return items, nil
}

// PurchaseItem spends gems on a cosmetic inside one transaction so a
// concurrent purchase can't double-spend the same balance.
func (s *StoreService) PurchaseItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*store.Purchase, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var item store.Item
	err = tx.QueryRow(ctx, `
	SELECT id, price, is_active FROM store_items WHERE id = $1
	`, itemID).Scan(&item.ID, &item.Price, &item.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("store item not found")
		}
		return nil, fmt.Errorf("failed to get store item: %w", err)
	}
	if !item.IsActive {
		return nil, fmt.Errorf("store item is not available for purchase")
	}

	var gems int
	err = tx.QueryRow(ctx, `SELECT gems FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&gems)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if gems < item.Price {
		return nil, fmt.Errorf("not enough gems to purchase this item")
	}

	_, err = tx.Exec(ctx, `UPDATE users SET gems = gems - $2, updated_at = NOW() WHERE id = $1`, userID, item.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to deduct gems: %w", err)
	}

	purchase := &store.Purchase{
		ID:            uuid.New(),
		UserID:        userID,
		ItemID:        itemID,
		PricePaid:     item.Price,
		GemsRemaining: gems - item.Price,
		PurchasedAt:   time.Now(),
	}

	// Unique on (user_id, item_id): owning a cosmetic twice makes no sense.
	tag, err := tx.Exec(ctx, `
	INSERT INTO user_items (id, user_id, item_id, purchased_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, item_id) DO NOTHING
	`, purchase.ID, userID, itemID, purchase.PurchasedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("item already owned")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	return purchase, nil
}

// GetUserItems lists the cosmetics the user owns.
func (s *StoreService) GetUserItems(ctx context.Context, userID uuid.UUID) ([]*store.Item, error) {
	query := `
	SELECT si.id, si.name, si.description, si.item_type, si.image_url, si.price, si.is_active
	FROM store_items si
	INNER JOIN user_items ui ON ui.item_id = si.id
	WHERE ui.user_id = $1
	ORDER BY ui.purchased_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user items: %w", err)
	}
	defer rows.Close()

	var items []*store.Item
	for rows.Next() {
		var item store.Item
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.ItemType,
			&item.ImageURL,
			&item.Price,
			&item.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user item: %w", err)
		}
		items = append(items, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user items: %w", err)
	}

	if items == nil {
		items = []*store.Item{}
	}
	return items, nil
}

// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountStore is the durable per-account cart storage
type AccountStore interface {
	LoadCart(ctx context.Context, accountID uint) (Items, error)
	SaveCart(ctx context.Context, accountID uint, items Items) error
}

// LocalStore is the device-scoped fallback storage for anonymous sessions
type LocalStore interface {
	LoadLocalCart(ctx context.Context, deviceID string) (Items, error)
	SaveLocalCart(ctx context.Context, deviceID string, items Items) error
	ClearLocalCart(ctx context.Context, deviceID string) error
}

// gormAccountStore persists account carts as a single jsonb row per user
type gormAccountStore struct {
	db *gorm.DB
}

// NewAccountStore creates a Postgres-backed account cart store
func NewAccountStore(db *gorm.DB) AccountStore {
	return &gormAccountStore{db: db}
}

func (s *gormAccountStore) LoadCart(ctx context.Context, accountID uint) (Items, error) {
	var record CartRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", accountID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Items{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for account %d: %w", accountID, err)
	}
	return record.Items.Normalize(), nil
}

func (s *gormAccountStore) SaveCart(ctx context.Context, accountID uint, items Items) error {
	record := CartRecord{
		UserID: accountID,
		Items:  items.Normalize(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save cart for account %d: %w", accountID, err)
	}
	return nil
}

// RemoveProductFromCarts deletes a product id from every persisted account
// cart. Used when a product is removed from the catalog so the deletion is
// durable for users who are not currently browsing.
func RemoveProductFromCarts(ctx context.Context, db *gorm.DB, productID string) (int64, error) {
	result := db.WithContext(ctx).Exec(
		"UPDATE carts SET items = items - ?::text, updated_at = NOW() WHERE jsonb_exists(items, ?::text)",
		productID, productID,
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep product %s from carts: %w", productID, result.Error)
	}
	return result.RowsAffected, nil
}

// redisLocalStore keeps anonymous carts in Redis, keyed by session id
type redisLocalStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocalStore creates a Redis-backed device-scoped cart store
func NewLocalStore(client *redis.Client, ttl time.Duration) LocalStore {
	return &redisLocalStore{client: client, ttl: ttl}
}

func (s *redisLocalStore) key(deviceID string) string {
	return fmt.Sprintf("cart:session:%s", deviceID)
}

func (s *redisLocalStore) LoadLocalCart(ctx context.Context, deviceID string) (Items, error) {
	if deviceID == "" {
		return Items{}, nil
	}
	data, err := s.client.Get(ctx, s.key(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return Items{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest cart %s: %w", deviceID, err)
	}

	var items Items
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("corrupt guest cart %s: %w", deviceID, err)
	}
	return items.Normalize(), nil
}

func (s *redisLocalStore) SaveLocalCart(ctx context.Context, deviceID string, items Items) error {
	if deviceID == "" {
		return fmt.Errorf("session id required for guest cart")
	}
	data, err := json.Marshal(items.Normalize())
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(deviceID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart %s: %w", deviceID, err)
	}
	return nil
}

func (s *redisLocalStore) ClearLocalCart(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(deviceID)).Err(); err != nil {
		return fmt.Errorf("failed to clear guest cart %s: %w", deviceID, err)
	}
	return nil
}

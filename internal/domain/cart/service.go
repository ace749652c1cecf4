// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles cart business logic for the HTTP layer. Unlike Session,
// which owns a long-lived in-memory cart, the service is stateless per
// request: each call loads, mutates and persists through the same engine and
// stores the session object uses.
type Service struct {
	db       *gorm.DB
	config   *config.Config
	logger   logrus.FieldLogger
	catalog  Catalog
	engine   *Engine
	accounts AccountStore
	local    LocalStore
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger logrus.FieldLogger) *Service {
	lookup := catalog.NewLookup(db)
	accounts := NewAccountStore(db)
	local := NewLocalStore(redisClient, cfg.Cart.GuestCartTTL)
	return &Service{
		db:       db,
		config:   cfg,
		logger:   logger,
		catalog:  lookup,
		engine:   NewEngine(lookup, accounts, local, logger),
		accounts: accounts,
		local:    local,
	}
}

// NewSession builds a long-lived cart session over the service's stores,
// carrying the configured debounce window into the write-back.
func (s *Service) NewSession(deviceID string) *Session {
	return NewSession(SessionConfig{
		DeviceID:       deviceID,
		DebounceWindow: s.config.Cart.DebounceWindow,
		Catalog:        s.catalog,
		Accounts:       s.accounts,
		Local:          s.local,
		Logger:         s.logger,
	})
}

// CartProduct is a priced cart row with full product details for display
type CartProduct struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"unit_price"`
	Subtotal  float64         `json:"subtotal"`
}

// CartResponse represents a reconciled cart with totals
type CartResponse struct {
	SessionID         string        `json:"session_id,omitempty"`
	UserID            *uint         `json:"user_id,omitempty"`
	Items             Items         `json:"items"`
	Products          []CartProduct `json:"products"`
	TotalAmount       float64       `json:"total_amount"`
	TotalItemCount    int           `json:"total_item_count"`
	RemovedProductIDs []string      `json:"removed_product_ids"`
	Merged            bool          `json:"merged"`
}

// UpdateCartItemRequest represents a quantity update
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ReplaceCartRequest carries a whole cart state from the client
type ReplaceCartRequest struct {
	Items Items `json:"items" binding:"required"`
}

// GetCart reconciles and returns the cart for the current identity. When an
// authenticated request still carries a guest session id, the guest cart is
// merged in additively and the device copy cleared; this is the identity
// transition trigger for the HTTP flow.
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*CartResponse, error) {
	result, err := s.engine.Load(ctx, Identity{AccountID: userID, DeviceID: sessionID}, 0)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, userID, sessionID, result)
}

// AddItem puts one more unit of the product into the cart
func (s *Service) AddItem(ctx context.Context, userID *uint, sessionID string, productID string) (*CartResponse, error) {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	items, err := s.loadItems(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	items[productID]++

	if err := s.saveItems(ctx, userID, sessionID, items); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID, sessionID)
}

// UpdateItem sets the quantity for a product; zero removes it
func (s *Service) UpdateItem(ctx context.Context, userID *uint, sessionID string, productID string, quantity int) (*CartResponse, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	items, err := s.loadItems(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	items.Set(productID, quantity)

	if err := s.saveItems(ctx, userID, sessionID, items); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID, sessionID)
}

// ReplaceCart validates and stores a whole cart state sent by the client.
// Ids confirmed absent from the catalog and non-positive quantities are
// silently dropped, matching the persisted-cart invariant.
func (s *Service) ReplaceCart(ctx context.Context, userID *uint, sessionID string, items Items) (*CartResponse, error) {
	items = items.Normalize()

	if len(items) > 0 {
		ids := make([]string, 0, len(items))
		for pid := range items {
			ids = append(ids, pid)
		}
		snapshot, failed, err := s.catalog.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogQuery, err)
		}
		valid := Items{}
		for pid, qty := range items {
			if _, ok := snapshot[pid]; ok {
				valid[pid] = qty
			} else if _, ok := failed[pid]; ok {
				valid[pid] = qty
			}
		}
		items = valid
	}

	if err := s.saveItems(ctx, userID, sessionID, items); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID, sessionID)
}

// ClearCart removes all items. Invoked by the order consumer after a
// confirmed checkout.
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		return s.accounts.SaveCart(ctx, *userID, Items{})
	}
	return s.local.ClearLocalCart(ctx, sessionID)
}

// GetCartCount returns the total quantity across all cart entries
func (s *Service) GetCartCount(ctx context.Context, userID *uint, sessionID string) (int, error) {
	items, err := s.loadItems(ctx, userID, sessionID)
	if err != nil {
		return 0, err
	}
	return items.TotalQuantity(), nil
}

// RemoveProductFromAllCarts sweeps a deleted product out of every persisted
// account cart so the removal is durable, not merely cosmetic on next load.
func (s *Service) RemoveProductFromAllCarts(ctx context.Context, productID string) (int64, error) {
	affected, err := RemoveProductFromCarts(ctx, s.db, productID)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.logger.WithFields(logrus.Fields{
			"product_id": productID,
			"carts":      affected,
		}).Info("removed deleted product from account carts")
	}
	return affected, nil
}

func (s *Service) loadItems(ctx context.Context, userID *uint, sessionID string) (Items, error) {
	if userID != nil {
		return s.accounts.LoadCart(ctx, *userID)
	}
	return s.local.LoadLocalCart(ctx, sessionID)
}

func (s *Service) saveItems(ctx context.Context, userID *uint, sessionID string, items Items) error {
	if userID != nil {
		return s.accounts.SaveCart(ctx, *userID, items)
	}
	return s.local.SaveLocalCart(ctx, sessionID, items)
}

// buildResponse attaches full product details to a reconciliation result
func (s *Service) buildResponse(ctx context.Context, userID *uint, sessionID string, result *Result) (*CartResponse, error) {
	response := &CartResponse{
		SessionID:         sessionID,
		UserID:            userID,
		Items:             result.Items,
		Products:          []CartProduct{},
		TotalAmount:       result.TotalAmount,
		TotalItemCount:    result.TotalItemCount,
		RemovedProductIDs: result.RemovedProductIDs,
		Merged:            result.Merged,
	}

	for _, line := range result.LineItems {
		var prod catalog.Product
		err := s.db.WithContext(ctx).
			Preload("Category").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_order ASC, id ASC")
			}).
			Where("id = ?", line.ProductID).
			First(&prod).Error
		if err != nil {
			// Display details are best-effort; the priced line stands.
			continue
		}
		response.Products = append(response.Products, CartProduct{
			Product:   prod,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	return response, nil
}

// internal/domain/cart/session.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Session owns the live cart state for one browsing session, guest or
// authenticated. All mutation flows through it: the in-memory mapping is
// updated optimistically and a debounced write to the backing store follows.
// No other component mutates the state directly.
type Session struct {
	mu         sync.Mutex
	identity   Identity
	items      Items
	generation uint64

	catalog  Catalog
	engine   *Engine
	accounts AccountStore
	local    LocalStore
	writer   *Writer
	logger   logrus.FieldLogger
}

// SessionConfig carries the collaborators a Session needs. Everything is
// injected explicitly; the session holds no ambient state.
type SessionConfig struct {
	DeviceID       string
	DebounceWindow time.Duration // zero means DefaultDebounceWindow
	Catalog        Catalog
	Accounts       AccountStore
	Local          LocalStore
	Writer         *Writer
	Logger         logrus.FieldLogger
}

// NewSession creates an anonymous cart session. The writer's save function
// is bound here so debounced flushes always target the session's current
// identity.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		identity: Identity{DeviceID: cfg.DeviceID},
		items:    Items{},
		catalog:  cfg.Catalog,
		accounts: cfg.Accounts,
		local:    cfg.Local,
		writer:   cfg.Writer,
		logger:   cfg.Logger,
	}
	s.engine = NewEngine(cfg.Catalog, cfg.Accounts, cfg.Local, cfg.Logger)
	if s.writer == nil {
		delay := cfg.DebounceWindow
		if delay <= 0 {
			delay = DefaultDebounceWindow
		}
		s.writer = NewWriter(delay, nil, cfg.Logger)
	}
	s.writer.save = s.persist
	return s
}

// Items returns a copy of the current cart state
func (s *Session) Items() Items {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

// Generation returns the current session generation. It advances on every
// identity transition; reconciliation results tagged with an older value
// are stale.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Add puts one more unit of the product into the cart. The id must resolve
// against the catalog; ErrProductUnavailable otherwise.
func (s *Session) Add(ctx context.Context, productID string) error {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return ErrProductUnavailable
		}
		return fmt.Errorf("failed to resolve product %s: %w", productID, err)
	}

	s.mu.Lock()
	s.items[productID]++
	snapshot := s.items.Clone()
	s.mu.Unlock()

	s.writer.Schedule(snapshot)
	return nil
}

// SetQuantity sets the requested quantity directly. Zero removes the entry;
// negative values are rejected.
func (s *Session) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	s.items.Set(productID, qty)
	snapshot := s.items.Clone()
	s.mu.Unlock()

	s.writer.Schedule(snapshot)
	return nil
}

// Clear empties the cart and persists the empty state immediately. Called by
// the order consumer after a confirmed checkout; no reconciliation runs
// until the next add.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = Items{}
	s.mu.Unlock()

	s.writer.Schedule(Items{})
	return s.writer.Flush(ctx)
}

// Refresh re-derives the cart against the current catalog and stores. The
// result is discarded with ErrStaleReconciliation if the session identity
// changed while the reconciliation was in flight.
func (s *Session) Refresh(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	id := s.identity
	gen := s.generation
	s.mu.Unlock()

	result, err := s.engine.Load(ctx, id, gen)
	if err != nil {
		return nil, err
	}
	return s.adopt(result)
}

// SignIn transitions the session to the authenticated identity and runs the
// merge reconciliation: the guest cart is summed into the account cart, the
// device store cleared, and the merged result persisted.
func (s *Session) SignIn(ctx context.Context, accountID uint) (*Result, error) {
	s.mu.Lock()
	s.generation++
	s.identity.AccountID = &accountID
	id := s.identity
	gen := s.generation
	s.mu.Unlock()

	result, err := s.engine.Load(ctx, id, gen)
	if err != nil {
		return nil, err
	}
	return s.adopt(result)
}

// SignOut returns the session to anonymous and reloads the device cart
func (s *Session) SignOut(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	s.generation++
	s.identity.AccountID = nil
	id := s.identity
	gen := s.generation
	s.mu.Unlock()

	result, err := s.engine.Load(ctx, id, gen)
	if err != nil {
		return nil, err
	}
	return s.adopt(result)
}

// Close cancels any pending debounced write
func (s *Session) Close() {
	s.writer.Stop()
}

// adopt installs a reconciliation result as the live cart state, unless the
// session moved on to a newer generation while the load was in flight.
func (s *Session) adopt(result *Result) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Generation != s.generation {
		return nil, ErrStaleReconciliation
	}
	s.items = result.Items.Clone()
	return result, nil
}

// persist writes a snapshot to whichever store matches the session's
// identity at flush time.
func (s *Session) persist(ctx context.Context, items Items) error {
	s.mu.Lock()
	id := s.identity
	s.mu.Unlock()

	if id.AccountID != nil {
		return s.accounts.SaveCart(ctx, *id.AccountID, items)
	}
	return s.local.SaveLocalCart(ctx, id.DeviceID, items)
}

// internal/domain/cart/reconcile_test.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// stubCatalog implements Catalog over an in-memory product map. Like the
// real lookup it only surfaces active products, so a deactivated id reads
// as absent.
type stubCatalog struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	inactive map[string]bool
	err      error            // total query failure
	perIDErr map[string]error // partial lookup failures
	gate     chan struct{}    // when set, GetProductsByIDs blocks until closed
}

func (c *stubCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if prod, ok := c.products[id]; ok && !c.inactive[id] {
		return prod, nil
	}
	return nil, catalog.ErrProductNotFound
}

func (c *stubCatalog) GetProductsByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, map[string]error, error) {
	c.mu.Lock()
	gate := c.gate
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, nil, c.err
	}
	found := map[string]*catalog.Product{}
	failed := map[string]error{}
	for _, id := range ids {
		if err, ok := c.perIDErr[id]; ok {
			failed[id] = err
			continue
		}
		if prod, ok := c.products[id]; ok && !c.inactive[id] {
			found[id] = prod
		}
	}
	return found, failed, nil
}

func (c *stubCatalog) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

func (c *stubCatalog) deactivate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inactive == nil {
		c.inactive = map[string]bool{}
	}
	c.inactive[id] = true
}

// memAccountStore is an in-memory AccountStore
type memAccountStore struct {
	mu    sync.Mutex
	carts map[uint]Items
	saves int
	err   error
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{carts: map[uint]Items{}}
}

func (s *memAccountStore) LoadCart(ctx context.Context, accountID uint) (Items, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if items, ok := s.carts[accountID]; ok {
		return items.Clone(), nil
	}
	return Items{}, nil
}

func (s *memAccountStore) SaveCart(ctx context.Context, accountID uint, items Items) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.carts[accountID] = items.Clone()
	s.saves++
	return nil
}

// memLocalStore is an in-memory LocalStore
type memLocalStore struct {
	mu     sync.Mutex
	carts  map[string]Items
	saves  int
	clears int
}

func newMemLocalStore() *memLocalStore {
	return &memLocalStore{carts: map[string]Items{}}
}

func (s *memLocalStore) LoadLocalCart(ctx context.Context, deviceID string) (Items, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items, ok := s.carts[deviceID]; ok {
		return items.Clone(), nil
	}
	return Items{}, nil
}

func (s *memLocalStore) SaveLocalCart(ctx context.Context, deviceID string, items Items) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[deviceID] = items.Clone()
	s.saves++
	return nil
}

func (s *memLocalStore) ClearLocalCart(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, deviceID)
	s.clears++
	return nil
}

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func uintPtr(v uint) *uint { return &v }

func TestMergeIsAdditiveNotOverwriting(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"A": {ID: "A", Name: "A", Price: 10},
		"B": {ID: "B", Name: "B", Price: 20},
		"C": {ID: "C", Name: "C", Price: 30},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[7] = Items{"B": 3, "C": 1}
	local.carts["dev-1"] = Items{"A": 2, "B": 1}

	engine := NewEngine(cat, accounts, local, testLogger())
	result, err := engine.Load(context.Background(), Identity{AccountID: uintPtr(7), DeviceID: "dev-1"}, 1)

	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, Items{"A": 2, "B": 4, "C": 1}, result.Items)
	// Merged result is durable and the guest cart is gone.
	assert.Equal(t, Items{"A": 2, "B": 4, "C": 1}, accounts.carts[7])
	_, guestLeft := local.carts["dev-1"]
	assert.False(t, guestLeft)
}

func TestPruningIsDurableNotCosmetic(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"kept": {ID: "kept", Name: "Kept", Price: 100},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[5] = Items{"kept": 2, "X": 1}

	engine := NewEngine(cat, accounts, local, testLogger())
	result, err := engine.Load(context.Background(), Identity{AccountID: uintPtr(5)}, 1)

	require.NoError(t, err)
	assert.Equal(t, Items{"kept": 2}, result.Items)
	assert.Equal(t, []string{"X"}, result.RemovedProductIDs)

	// A fresh load from the store no longer sees X.
	reloaded, err := accounts.LoadCart(context.Background(), 5)
	require.NoError(t, err)
	_, stillThere := reloaded["X"]
	assert.False(t, stillThere)
}

func TestDeactivatedProductPrunedLikeMissing(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"live": {ID: "live", Name: "Live", Price: 10},
		"off":  {ID: "off", Name: "Off", Price: 20},
	}}
	cat.deactivate("off")
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[4] = Items{"live": 1, "off": 2}

	engine := NewEngine(cat, accounts, local, testLogger())
	result, err := engine.Load(context.Background(), Identity{AccountID: uintPtr(4)}, 1)

	require.NoError(t, err)
	assert.Equal(t, Items{"live": 1}, result.Items)
	assert.Equal(t, []string{"off"}, result.RemovedProductIDs)
	// The surviving cart is durable without the deactivated listing.
	assert.Equal(t, Items{"live": 1}, accounts.carts[4])
}

func TestTotalCatalogFailurePreservesState(t *testing.T) {
	cat := &stubCatalog{err: errors.New("connection refused")}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[5] = Items{"A": 2, "B": 1}
	local.carts["dev-1"] = Items{"C": 4}

	engine := NewEngine(cat, accounts, local, testLogger())
	_, err := engine.Load(context.Background(), Identity{AccountID: uintPtr(5), DeviceID: "dev-1"}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogQuery)
	// Nothing was written or cleared anywhere.
	assert.Equal(t, Items{"A": 2, "B": 1}, accounts.carts[5])
	assert.Equal(t, Items{"C": 4}, local.carts["dev-1"])
	assert.Equal(t, 0, accounts.saves)
	assert.Equal(t, 0, local.clears)
}

func TestPartialLookupFailureKeepsErroredItems(t *testing.T) {
	cat := &stubCatalog{
		products: map[string]*catalog.Product{
			"ok": {ID: "ok", Name: "OK", Price: 50},
		},
		perIDErr: map[string]error{"flaky": fmt.Errorf("timeout")},
	}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[9] = Items{"ok": 1, "flaky": 2, "gone": 3}

	engine := NewEngine(cat, accounts, local, testLogger())
	result, err := engine.Load(context.Background(), Identity{AccountID: uintPtr(9)}, 1)

	require.NoError(t, err)
	// Only confirmed-absent ids are pruned; the errored one stays.
	assert.Equal(t, Items{"ok": 1, "flaky": 2}, result.Items)
	assert.Equal(t, []string{"gone"}, result.RemovedProductIDs)
	// The flaky item prices at zero since it could not be resolved.
	assert.Equal(t, 50.0, result.TotalAmount)
}

func TestAnonymousLoadPrunesLocalStore(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"A": {ID: "A", Name: "A", Price: 10},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	local.carts["dev-2"] = Items{"A": 1, "stale": 2}

	engine := NewEngine(cat, accounts, local, testLogger())
	result, err := engine.Load(context.Background(), Identity{DeviceID: "dev-2"}, 1)

	require.NoError(t, err)
	assert.Equal(t, Items{"A": 1}, result.Items)
	assert.Equal(t, Items{"A": 1}, local.carts["dev-2"])
	assert.Equal(t, 0, accounts.saves)
}

func TestLoadWithNothingStaleDoesNotRewrite(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"A": {ID: "A", Name: "A", Price: 10},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[3] = Items{"A": 2}

	engine := NewEngine(cat, accounts, local, testLogger())
	result, err := engine.Load(context.Background(), Identity{AccountID: uintPtr(3)}, 1)

	require.NoError(t, err)
	assert.Empty(t, result.RemovedProductIDs)
	assert.Equal(t, 0, accounts.saves)
}

func TestEndToEndGuestToAccountScenario(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"P1": {ID: "P1", Name: "Controller", Price: 500},
		"P2": {ID: "P2", Name: "Charging Dock", Price: 300, OfferPrice: floatPtr(250)},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	engine := NewEngine(cat, accounts, local, testLogger())
	ctx := context.Background()

	// Anonymous user builds a cart: P1 x2, P2 x1.
	local.carts["dev-9"] = Items{"P1": 2, "P2": 1}

	result, err := engine.Load(ctx, Identity{DeviceID: "dev-9"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalItemCount)
	assert.Equal(t, 1250.00, result.TotalAmount)

	// The account already has P1 saved, and P2 vanishes from the catalog
	// before login.
	accounts.carts[42] = Items{"P1": 1}
	cat.remove("P2")

	result, err = engine.Load(ctx, Identity{AccountID: uintPtr(42), DeviceID: "dev-9"}, 2)
	require.NoError(t, err)
	assert.Equal(t, Items{"P1": 3}, result.Items)
	assert.Equal(t, []string{"P2"}, result.RemovedProductIDs)
	assert.Equal(t, Items{"P1": 3}, accounts.carts[42])
}

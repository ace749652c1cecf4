// internal/domain/cart/session_test.go
package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func newTestSession(cat *stubCatalog, accounts *memAccountStore, local *memLocalStore) *Session {
	return NewSession(SessionConfig{
		DeviceID: "dev-1",
		Catalog:  cat,
		Accounts: accounts,
		Local:    local,
		Writer:   NewWriter(10*time.Millisecond, nil, testLogger()),
		Logger:   testLogger(),
	})
}

func TestSessionWriterUsesConfiguredDebounceWindow(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cart.DebounceWindow = 25 * time.Millisecond

	svc := NewService(nil, nil, cfg, testLogger())
	s := svc.NewSession("dev-1")
	defer s.Close()

	assert.Equal(t, 25*time.Millisecond, s.writer.delay)
}

func TestSessionWriterDefaultsDebounceWindow(t *testing.T) {
	s := NewSession(SessionConfig{DeviceID: "dev-1", Logger: testLogger()})
	defer s.Close()

	assert.Equal(t, DefaultDebounceWindow, s.writer.delay)
}

func TestSessionAddUnknownProductFails(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{}}
	s := newTestSession(cat, newMemAccountStore(), newMemLocalStore())
	defer s.Close()

	err := s.Add(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Empty(t, s.Items())
}

func TestSessionAddIncrements(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
	}}
	s := newTestSession(cat, newMemAccountStore(), newMemLocalStore())
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "p1"))
	require.NoError(t, s.Add(ctx, "p1"))

	assert.Equal(t, Items{"p1": 2}, s.Items())
}

func TestSessionNoZeroOrNegativeEntries(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
	}}
	s := newTestSession(cat, newMemAccountStore(), newMemLocalStore())
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.SetQuantity(ctx, "p1", 5))
	require.NoError(t, s.SetQuantity(ctx, "p1", 0))

	_, present := s.Items()["p1"]
	assert.False(t, present, "quantity zero must delete the entry, not store it")

	err := s.SetQuantity(ctx, "p1", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, s.Items())
}

func TestSessionMutationsDebounceIntoOnePersist(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
	}}
	local := newMemLocalStore()
	s := newTestSession(cat, newMemAccountStore(), local)
	defer s.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(ctx, "p1"))
	}

	assert.Eventually(t, func() bool {
		local.mu.Lock()
		defer local.mu.Unlock()
		return local.saves == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, Items{"p1": 5}, local.carts["dev-1"])
}

func TestSessionClearPersistsImmediately(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
	}}
	local := newMemLocalStore()
	s := newTestSession(cat, newMemAccountStore(), local)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "p1"))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Items())
	assert.Equal(t, Items{}, local.carts["dev-1"])
}

func TestSessionSignInMergesGuestCart(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
		"p2": {ID: "p2", Name: "Pad", Price: 20},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	accounts.carts[11] = Items{"p1": 1}
	local.carts["dev-1"] = Items{"p1": 2, "p2": 1}

	s := newTestSession(cat, accounts, local)
	defer s.Close()

	result, err := s.SignIn(context.Background(), 11)

	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, Items{"p1": 3, "p2": 1}, s.Items())
	assert.Equal(t, Items{"p1": 3, "p2": 1}, accounts.carts[11])
}

func TestSessionSignInIsOneShot(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	local.carts["dev-1"] = Items{"p1": 2}

	s := newTestSession(cat, accounts, local)
	defer s.Close()
	ctx := context.Background()

	_, err := s.SignIn(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, Items{"p1": 2}, accounts.carts[11])

	// A duplicate trigger must not double-sum: the guest cart was cleared
	// as part of the first merge.
	result, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, result.Merged)
	assert.Equal(t, Items{"p1": 2}, accounts.carts[11])
}

func TestSessionDiscardsStaleReconciliation(t *testing.T) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Mouse", Price: 100},
	}}
	accounts := newMemAccountStore()
	local := newMemLocalStore()
	local.carts["dev-1"] = Items{"p1": 1}

	s := newTestSession(cat, accounts, local)
	defer s.Close()
	ctx := context.Background()

	// Block the in-flight refresh, change identity underneath it, then let
	// it finish: its result carries an old generation and must be dropped.
	gate := make(chan struct{})
	cat.mu.Lock()
	cat.gate = gate
	cat.mu.Unlock()

	refreshErr := make(chan error, 1)
	go func() {
		_, err := s.Refresh(ctx)
		refreshErr <- err
	}()

	// Let the refresh reach the catalog before switching identity.
	time.Sleep(20 * time.Millisecond)
	cat.mu.Lock()
	cat.gate = nil
	cat.mu.Unlock()

	_, err := s.SignIn(ctx, 11)
	require.NoError(t, err)

	close(gate)
	assert.ErrorIs(t, <-refreshErr, ErrStaleReconciliation)
}

// internal/domain/cart/reconcile.go
package cart

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Catalog is the read-only product resolution the engine depends on.
// Implementations must distinguish "not found" from "query failed":
// GetProduct returns catalog.ErrProductNotFound for confirmed absence, and
// GetProductsByIDs reports per-id lookup errors separately from absence.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, map[string]error, error)
}

// Identity describes whose cart is being reconciled. A nil AccountID means
// an anonymous session backed only by the device-scoped store.
type Identity struct {
	AccountID *uint
	DeviceID  string
}

// Engine resolves the authoritative cart state at session start and on
// explicit refresh: it merges guest state into account state on the first
// load after sign-in, prunes entries whose product no longer exists, and
// re-persists the surviving cart so the pruning is durable.
type Engine struct {
	catalog  Catalog
	accounts AccountStore
	local    LocalStore
	logger   logrus.FieldLogger
}

// NewEngine creates a reconciliation engine
func NewEngine(cat Catalog, accounts AccountStore, local LocalStore, logger logrus.FieldLogger) *Engine {
	return &Engine{
		catalog:  cat,
		accounts: accounts,
		local:    local,
		logger:   logger,
	}
}

// Load runs one reconciliation cycle for the given identity.
//
// Anonymous sessions read the device-scoped store only. Authenticated
// sessions read the account store, and when a non-empty device cart is also
// present the two are merged additively (quantities sum for shared ids) —
// the guest cart is brought in on top of whatever was already saved. The
// device store is cleared immediately after a successful merge, which is the
// one-shot guard against double-summing if the trigger fires twice.
//
// Pruning happens on every load: ids confirmed absent from the catalog are
// dropped and the surviving cart re-persisted. If the catalog cannot be
// reached at all, the call fails with ErrCatalogQuery and no store is
// touched. Per-id lookup failures degrade to keeping the item.
func (e *Engine) Load(ctx context.Context, id Identity, generation uint64) (*Result, error) {
	var (
		items  Items
		merged bool
	)

	if id.AccountID == nil {
		local, err := e.local.LoadLocalCart(ctx, id.DeviceID)
		if err != nil {
			return nil, err
		}
		items = local
	} else {
		account, err := e.accounts.LoadCart(ctx, *id.AccountID)
		if err != nil {
			return nil, err
		}
		items = account

		if id.DeviceID != "" {
			guest, err := e.local.LoadLocalCart(ctx, id.DeviceID)
			if err != nil {
				return nil, err
			}
			if len(guest) > 0 {
				items = mergeAdditive(account, guest)
				merged = true
			}
		}
	}

	surviving, snapshot, removed, err := e.prune(ctx, items)
	if err != nil {
		// Catalog unreachable. Leave every store untouched, including the
		// guest cart: the merge must not be half-applied.
		return nil, err
	}

	// Persist the outcome durably. The merge target is always the account
	// store; an anonymous session re-persists its device cart only when
	// something was pruned.
	if id.AccountID != nil {
		if merged || len(removed) > 0 {
			if err := e.accounts.SaveCart(ctx, *id.AccountID, surviving); err != nil {
				return nil, err
			}
		}
		if merged {
			if err := e.local.ClearLocalCart(ctx, id.DeviceID); err != nil {
				// The merge is already durable; a leftover guest cart would
				// double-sum on the next load, so this is worth surfacing.
				return nil, fmt.Errorf("failed to clear guest cart after merge: %w", err)
			}
		}
	} else if len(removed) > 0 {
		if err := e.local.SaveLocalCart(ctx, id.DeviceID, surviving); err != nil {
			return nil, err
		}
	}

	if len(removed) > 0 {
		e.logger.WithFields(logrus.Fields{
			"removed_count": len(removed),
			"device_id":     id.DeviceID,
		}).Info("removed unavailable products from cart")
	}

	summary := Calculate(surviving, snapshot)

	return &Result{
		Items:             surviving,
		LineItems:         summary.LineItems,
		TotalAmount:       summary.TotalAmount,
		TotalItemCount:    summary.TotalItemCount,
		RemovedProductIDs: removed,
		Merged:            merged,
		Generation:        generation,
	}, nil
}

// prune drops cart entries whose product is confirmed absent. Entries whose
// lookup errored are kept: only verified absence removes an item.
func (e *Engine) prune(ctx context.Context, items Items) (Items, map[string]*catalog.Product, []string, error) {
	surviving := Items{}
	removed := []string{}

	if len(items) == 0 {
		return surviving, map[string]*catalog.Product{}, removed, nil
	}

	ids := make([]string, 0, len(items))
	for pid := range items {
		ids = append(ids, pid)
	}
	sort.Strings(ids)

	snapshot, failed, err := e.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrCatalogQuery, err)
	}

	for _, pid := range ids {
		if _, ok := snapshot[pid]; ok {
			surviving[pid] = items[pid]
			continue
		}
		if lookupErr, ok := failed[pid]; ok {
			// Could not verify; keep the item.
			e.logger.WithError(lookupErr).WithField("product_id", pid).
				Warn("product lookup failed during cart pruning, keeping item")
			surviving[pid] = items[pid]
			continue
		}
		removed = append(removed, pid)
	}

	return surviving, snapshot, removed, nil
}

// mergeAdditive sums quantities across both carts. Not max, not overwrite:
// the guest cart is added on top of anything already saved to the account.
func mergeAdditive(account, guest Items) Items {
	merged := account.Clone()
	for pid, qty := range guest {
		merged[pid] += qty
	}
	return merged.Normalize()
}

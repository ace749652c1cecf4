// internal/domain/cart/errors.go
package cart

import "errors"

var (
	// ErrProductUnavailable is returned by Add when the target id cannot be
	// resolved against the catalog. Rejected at the request layer, never fatal.
	ErrProductUnavailable = errors.New("product not available")

	// ErrCatalogQuery is returned when existence pruning could not reach the
	// catalog at all. The prior cart state is left untouched, because an
	// inability to verify existence is not evidence of non-existence.
	ErrCatalogQuery = errors.New("catalog query failed")

	// ErrStaleReconciliation marks a reconciliation result whose session
	// generation is older than the current one. Callers discard it.
	ErrStaleReconciliation = errors.New("stale reconciliation result")

	// ErrInvalidQuantity is returned for negative quantity updates
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
)

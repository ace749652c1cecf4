// internal/domain/cart/pricing.go
package cart

import (
	"math"
	"sort"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Calculate derives line items and totals from a cart state and a catalog
// snapshot. Pure function: no I/O, no mutation of its inputs.
//
// The unit price is the offer price when it is set and strictly lower than
// the regular price, otherwise the regular price. Entries whose product is
// missing from the snapshot contribute zero; dropping them is the
// reconciliation engine's job, not the calculator's.
func Calculate(items Items, snapshot map[string]*catalog.Product) Summary {
	summary := Summary{LineItems: []LineItem{}}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var total float64
	for _, id := range ids {
		qty := items[id]
		if qty <= 0 {
			continue
		}
		prod, ok := snapshot[id]
		if !ok || prod == nil {
			continue
		}

		unitPrice := prod.EffectivePrice()
		subtotal := unitPrice * float64(qty)
		total += subtotal

		summary.LineItems = append(summary.LineItems, LineItem{
			ProductID: id,
			Name:      prod.Name,
			UnitPrice: unitPrice,
			Quantity:  qty,
			Subtotal:  subtotal,
		})
		summary.TotalItemCount += qty
	}

	// Truncate to two decimals. Flooring, not rounding: downstream order
	// arithmetic depends on this exact convention.
	summary.TotalAmount = FloorAmount(total)
	return summary
}

// FloorAmount truncates a monetary value to two decimal places
func FloorAmount(v float64) float64 {
	return math.Floor(v*100) / 100
}

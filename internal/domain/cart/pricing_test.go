// internal/domain/cart/pricing_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateUsesOfferPriceWhenStrictlyLower(t *testing.T) {
	snapshot := map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Gaming Mouse", Price: 1000, OfferPrice: floatPtr(850)},
	}

	summary := Calculate(Items{"p1": 3}, snapshot)

	assert.Len(t, summary.LineItems, 1)
	assert.Equal(t, 850.0, summary.LineItems[0].UnitPrice)
	assert.Equal(t, 2550.0, summary.LineItems[0].Subtotal)
	assert.Equal(t, 2550.0, summary.TotalAmount)
	assert.Equal(t, 3, summary.TotalItemCount)
}

func TestCalculateIgnoresOfferPriceWhenEqual(t *testing.T) {
	snapshot := map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Keyboard", Price: 1000, OfferPrice: floatPtr(1000)},
	}

	summary := Calculate(Items{"p1": 1}, snapshot)

	assert.Equal(t, 1000.0, summary.LineItems[0].UnitPrice)
}

func TestCalculateFloorsTotalToTwoDecimals(t *testing.T) {
	// 3 x 66.666 = 199.998 -> floors to 199.99, never rounds up
	snapshot := map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Cable", Price: 66.666},
	}

	summary := Calculate(Items{"p1": 3}, snapshot)

	assert.Equal(t, 199.99, summary.TotalAmount)
}

func TestFloorAmountTruncates(t *testing.T) {
	assert.Equal(t, 199.99, FloorAmount(199.999))
	assert.Equal(t, 0.0, FloorAmount(0.009))
	assert.Equal(t, 10.0, FloorAmount(10))
}

func TestCalculateSkipsMissingProducts(t *testing.T) {
	snapshot := map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Headset", Price: 200},
	}

	summary := Calculate(Items{"p1": 2, "ghost": 5}, snapshot)

	assert.Len(t, summary.LineItems, 1)
	assert.Equal(t, 400.0, summary.TotalAmount)
	assert.Equal(t, 2, summary.TotalItemCount)
}

func TestCalculateCountsQuantitiesNotDistinctProducts(t *testing.T) {
	snapshot := map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "A", Price: 10},
		"p2": {ID: "p2", Name: "B", Price: 20},
	}

	summary := Calculate(Items{"p1": 4, "p2": 2}, snapshot)

	assert.Equal(t, 6, summary.TotalItemCount)
	assert.Equal(t, 80.0, summary.TotalAmount)
}

func TestCalculateEmptyCart(t *testing.T) {
	summary := Calculate(Items{}, map[string]*catalog.Product{})

	assert.Empty(t, summary.LineItems)
	assert.Equal(t, 0.0, summary.TotalAmount)
	assert.Equal(t, 0, summary.TotalItemCount)
}

// internal/domain/catalog/entity_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestEffectivePriceUsesOfferWhenStrictlyLower(t *testing.T) {
	p := Product{Price: 1000, OfferPrice: floatPtr(850)}
	assert.Equal(t, 850.0, p.EffectivePrice())
	assert.True(t, p.HasOffer())
}

func TestEffectivePriceIgnoresEqualOffer(t *testing.T) {
	p := Product{Price: 1000, OfferPrice: floatPtr(1000)}
	assert.Equal(t, 1000.0, p.EffectivePrice())
	assert.False(t, p.HasOffer())
}

func TestEffectivePriceIgnoresHigherOffer(t *testing.T) {
	p := Product{Price: 1000, OfferPrice: floatPtr(1200)}
	assert.Equal(t, 1000.0, p.EffectivePrice())
}

func TestEffectivePriceWithoutOffer(t *testing.T) {
	p := Product{Price: 499.99}
	assert.Equal(t, 499.99, p.EffectivePrice())
	assert.False(t, p.HasOffer())
}

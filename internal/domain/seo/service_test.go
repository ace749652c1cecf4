// internal/domain/seo/service_test.go
package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertSeoRequestValidateNormalizesSlug(t *testing.T) {
	req := &UpsertSeoRequest{Slug: "  Gaming-Laptops  "}
	assert.NoError(t, req.validate())
	assert.Equal(t, "gaming-laptops", req.Slug)
}

func TestUpsertSeoRequestValidateRejectsBadSlugs(t *testing.T) {
	for _, slug := range []string{"", "has space", "trailing-", "-leading", "under_score", "slash/es"} {
		req := &UpsertSeoRequest{Slug: slug}
		assert.Error(t, req.validate(), "slug %q should be rejected", slug)
	}
}

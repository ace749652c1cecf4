// internal/domain/catalog/service_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListRequestPublicOnly(t *testing.T) {
	var req ProductListRequest
	require.Nil(t, req.IsActive, "binding never populates the active filter")

	req.PublicOnly()

	require.NotNil(t, req.IsActive)
	assert.True(t, *req.IsActive, "storefront listings must only show active products")
}

//go:build unit

package patch_test

import (
	"testing"

	"station-booking/internal/pkg/patch"
	"station-booking/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
)

type specs struct{ CPU string }

func TestEmpty(t *testing.T) {
	var (
		name  *string
		rate  *int64
		extra *specs
	)
	assert.True(t, patch.Empty())
	assert.True(t, patch.Empty(name, rate, extra, nil))
	assert.False(t, patch.Empty(name, ptr.Of(int64(0))))
	assert.False(t, patch.Empty(&specs{}))
}

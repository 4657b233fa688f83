package quota_test

import (
	"testing"

	"github.com/rumsan/docsctl/internal/quota"
	"github.com/stretchr/testify/assert"
)

func TestCanUploadPersonalWorkspace(t *testing.T) {
	for n := 0; n <= 10; n++ {
		assert.Equal(t, n < quota.MaxDemoDocuments, quota.CanUpload(true, n), "count %d", n)
	}
}

func TestCanUploadOtherWorkspace(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 100, 10000} {
		assert.True(t, quota.CanUpload(false, n), "count %d", n)
	}
}

func TestCanUploadScenarios(t *testing.T) {
	assert.False(t, quota.CanUpload(true, 2), "personal workspace at the limit is disabled")
	assert.True(t, quota.CanUpload(true, 1), "personal workspace below the limit is enabled")
}

func TestLimit(t *testing.T) {
	limit, ok := quota.Limit(true)
	assert.True(t, ok)
	assert.Equal(t, 2, limit)

	_, ok = quota.Limit(false)
	assert.False(t, ok)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, quota.Check(true, 1))
	assert.ErrorIs(t, quota.Check(true, 2), quota.ErrQuotaExceeded)
	assert.NoError(t, quota.Check(false, 50))
}

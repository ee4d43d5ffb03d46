package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetClearsAndReseeds(t *testing.T) {
	repo := &fakeMemoryRepo{}
	seedN(t, repo, 5, false)
	admin := NewAdminService(repo, nil)

	result, err := admin.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Deleted)
	assert.NotEmpty(t, result.ReseededID)

	page, err := NewFeedService(repo, nil).LoadInitial(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	seed := page.Entries[0]
	assert.Equal(t, result.ReseededID, seed.ID)
	assert.Equal(t, FallbackMemory().Title, seed.Title)
	assert.True(t, seed.Featured)
	assert.Equal(t, int64(0), seed.Reactions["like"], "reseeded entry starts with zero reactions")
}

func TestResetOnEmptyCollection(t *testing.T) {
	repo := &fakeMemoryRepo{}
	admin := NewAdminService(repo, nil)

	result, err := admin.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Deleted)
	assert.NotEmpty(t, result.ReseededID)
}

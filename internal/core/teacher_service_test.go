package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/pkg/cache"
)

func TestTeacherServiceListPreviews(t *testing.T) {
	ctx := context.Background()

	t.Run("serves previews and caches them", func(t *testing.T) {
		c := cache.NewMemoryCache()
		svc := NewTeacherService(newFakeTeacherRepo(testTeacher("t1"), testTeacher("t2")), c, zap.NewNop())

		previews, err := svc.ListPreviews(ctx)
		require.NoError(t, err)
		assert.Len(t, previews, 2)

		cached, err := c.Get("teachers:previews")
		require.NoError(t, err)
		assert.NotEmpty(t, cached)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		c := cache.NewMemoryCache()
		svc := NewTeacherService(newFakeTeacherRepo(testTeacher("t1")), c, zap.NewNop())

		_, err := svc.ListPreviews(ctx)
		require.NoError(t, err)

		// A second service over an empty repo but the same cache still sees
		// the cached list.
		svc2 := NewTeacherService(newFakeTeacherRepo(), c, zap.NewNop())
		previews, err := svc2.ListPreviews(ctx)
		require.NoError(t, err)
		assert.Len(t, previews, 1)
	})

	t.Run("corrupt cache entry is dropped and refilled", func(t *testing.T) {
		c := cache.NewMemoryCache()
		require.NoError(t, c.Set("teachers:previews", "{not json", 0))

		svc := NewTeacherService(newFakeTeacherRepo(testTeacher("t1")), c, zap.NewNop())
		previews, err := svc.ListPreviews(ctx)
		require.NoError(t, err)
		assert.Len(t, previews, 1)
	})
}

func TestTeacherServiceGetByID(t *testing.T) {
	ctx := context.Background()
	svc := NewTeacherService(newFakeTeacherRepo(testTeacher("t1")), cache.NewMemoryCache(), zap.NewNop())

	teacher, err := svc.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", teacher.Name)

	_, err = svc.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestTeacherServiceGetExtra(t *testing.T) {
	ctx := context.Background()
	svc := NewTeacherService(newFakeTeacherRepo(testTeacher("t1")), cache.NewMemoryCache(), zap.NewNop())

	_, err := svc.GetExtra(ctx, "ghost", "uk")
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

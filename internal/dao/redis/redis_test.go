package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/errorx"
)

// newTestCache 0 个 Worker 且无缓冲，SubmitTask 总是同步执行
func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client, 0, 0), mr
}

type countingCatRepo struct {
	calls int
	cats  map[string]model.Cat
}

func (r *countingCatRepo) FindByUuid(_ context.Context, uuid string) (*model.Cat, error) {
	r.calls++
	c, ok := r.cats[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "猫咪不存在")
	}
	return &c, nil
}

func TestRedisCacheBasicOps(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	v, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	missing, err := cache.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing)

	ok, err := cache.SetNX(ctx, "throttle", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = cache.SetNX(ctx, "throttle", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = cache.SetNX(ctx, "throttle", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestDirectoryCacheReadsThrough(t *testing.T) {
	cache, mr := newTestCache(t)
	inner := &countingCatRepo{cats: map[string]model.Cat{"C1": {Uuid: "C1", ShelterId: "S1", Name: "Mimi"}}}
	repos := WithDirectoryCache(&repository.Repositories{Cat: inner}, cache)
	ctx := context.Background()

	first, err := repos.Cat.FindByUuid(ctx, "C1")
	require.NoError(t, err)
	second, err := repos.Cat.FindByUuid(ctx, "C1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.ShelterId, second.ShelterId)
	assert.True(t, mr.Exists(catKeyPrefix+"C1"))

	_, err = repos.Cat.FindByUuid(ctx, "C404")
	assert.True(t, errorx.IsNotFound(err))
	assert.False(t, mr.Exists(catKeyPrefix+"C404"))
}

func TestDirectoryCacheDropsCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)
	inner := &countingCatRepo{cats: map[string]model.Cat{"C1": {Uuid: "C1", ShelterId: "S1"}}}
	repos := WithDirectoryCache(&repository.Repositories{Cat: inner}, cache)
	require.NoError(t, mr.Set(catKeyPrefix+"C1", "{not json"))

	cat, err := repos.Cat.FindByUuid(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "S1", cat.ShelterId)
	assert.Equal(t, 1, inner.calls)

	// 回源后重新写入了合法数据
	raw, err := mr.Get(catKeyPrefix + "C1")
	require.NoError(t, err)
	assert.Contains(t, raw, "S1")
}

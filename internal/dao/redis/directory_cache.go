package redis

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/constants"
)

// 目录数据由外部系统维护，缓存时间保持较短
const (
	catCacheTTL  = constants.REDIS_TIMEOUT * time.Minute
	userCacheTTL = constants.REDIS_TIMEOUT * time.Minute

	catKeyPrefix  = "directory_cat_"
	userKeyPrefix = "directory_user_"
)

// WithDirectoryCache 为猫咪与用户的只读查询加上 cache-aside 缓存
// 救助站审核状态与成员关系直接读库，避免授权判断使用过期数据
// 事务内的 Repository 由 TxRunner 重新创建，不经过缓存
func WithDirectoryCache(repos *repository.Repositories, cache AsyncCacheService) *repository.Repositories {
	wrapped := *repos
	wrapped.Cat = &cachedCatRepository{inner: repos.Cat, cache: cache}
	wrapped.User = &cachedUserRepository{inner: repos.User, cache: cache}
	return &wrapped
}

type cachedCatRepository struct {
	inner repository.CatRepository
	cache AsyncCacheService
}

func (r *cachedCatRepository) FindByUuid(ctx context.Context, uuid string) (*model.Cat, error) {
	var cat model.Cat
	if readThrough(ctx, r.cache, catKeyPrefix+uuid, &cat) {
		return &cat, nil
	}
	found, err := r.inner.FindByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	writeBack(r.cache, catKeyPrefix+uuid, found, catCacheTTL)
	return found, nil
}

type cachedUserRepository struct {
	inner repository.UserRepository
	cache AsyncCacheService
}

func (r *cachedUserRepository) FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if readThrough(ctx, r.cache, userKeyPrefix+uuid, &user) {
		return &user, nil
	}
	found, err := r.inner.FindByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	writeBack(r.cache, userKeyPrefix+uuid, found, userCacheTTL)
	return found, nil
}

// LockByUuid 加锁读取必须落库
func (r *cachedUserRepository) LockByUuid(ctx context.Context, uuid string) (*model.UserInfo, error) {
	return r.inner.LockByUuid(ctx, uuid)
}

// readThrough 命中且可解析时返回 true；缓存异常只记日志，不影响业务
func readThrough(ctx context.Context, cache AsyncCacheService, key string, out any) bool {
	raw, err := cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("读取目录缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// 脏数据，异步删除后回源
		zap.L().Error("目录缓存反序列化失败", zap.String("key", key), zap.Error(err))
		cache.SubmitTask(func() {
			if err := cache.Delete(context.Background(), key); err != nil {
				zap.L().Error(err.Error())
			}
		})
		return false
	}
	return true
}

func writeBack(cache AsyncCacheService, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		zap.L().Error("目录缓存序列化失败", zap.String("key", key), zap.Error(err))
		return
	}
	cache.SubmitTask(func() {
		if err := cache.Set(context.Background(), key, string(payload), ttl); err != nil {
			zap.L().Error("回填目录缓存失败", zap.String("key", key), zap.Error(err))
		}
	})
}

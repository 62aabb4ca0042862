// Package redis 提供 Redis 缓存操作的封装
// 本文件仅包含 Redis 连接初始化逻辑
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"strconv"
	"time"

	"cat_adoption_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// Init 初始化 Redis 连接并创建缓存服务
// 连接不可用时返回错误，由调用方决定是否降级为无缓存运行
func Init(conf *config.RedisConfig) (*RedisCache, error) {
	// 拼接地址：host:port
	addr := conf.Host + ":" + strconv.Itoa(conf.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Password,
		DB:       conf.Db,
		// 连接池配置
		PoolSize:     50, // 最大连接数
		MinIdleConns: 8,  // 最小空闲连接，与 Worker 数量匹配
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	// 8 个 Worker，缓冲区 2000，供目录缓存回填与短信限流共享
	return NewRedisCache(client, 8, 2000), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cat_adoption_server/internal/config"
	"cat_adoption_server/internal/dao/memory"
	dao "cat_adoption_server/internal/dao/mysql"
	"cat_adoption_server/internal/dao/mysql/repository"
	myredis "cat_adoption_server/internal/dao/redis"
	"cat_adoption_server/internal/gateway/websocket"
	"cat_adoption_server/internal/handler"
	"cat_adoption_server/internal/https_server"
	"cat_adoption_server/internal/infrastructure/logger"
	"cat_adoption_server/internal/infrastructure/mq"
	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/internal/infrastructure/sms"
	"cat_adoption_server/internal/service"
	"cat_adoption_server/pkg/util/jwt"
	"cat_adoption_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化存储
	repos, err := initStorage(conf)
	if err != nil {
		zap.L().Fatal("存储初始化失败", zap.Error(err))
	}
	zap.L().Info("存储初始化成功", zap.String("driver", conf.StorageConfig.Driver))

	// 4. 初始化 Redis（可选），为目录查询加缓存
	var cache myredis.CacheService
	if conf.RedisConfig.Enabled {
		redisCache, err := myredis.Init(&conf.RedisConfig)
		if err != nil {
			zap.L().Fatal("Redis 初始化失败", zap.Error(err))
		}
		defer redisCache.Close()
		repos = myredis.WithDirectoryCache(repos, redisCache)
		cache = redisCache
		zap.L().Info("Redis 初始化成功")
	}

	// 5. 初始化 JWT 与雪花算法
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)
	snowflake.Init()
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}

	// 6. 初始化通知渠道
	hub := websocket.NewHub()
	notifiers := []notify.Notifier{notify.LogNotifier{}, hub}

	smsSender, err := sms.NewSender(conf.SmsConfig)
	if err != nil {
		zap.L().Fatal("SMS 初始化失败", zap.Error(err))
	}
	notifiers = append(notifiers, sms.NewStatusNotifier(smsSender, repos.User, cache))

	var kafkaNotifier *mq.KafkaNotifier
	if conf.KafkaConfig.NotifyMode == "kafka" {
		mq.EnsureTopic(conf.KafkaConfig)
		kafkaNotifier = mq.NewKafkaNotifier(conf.KafkaConfig)
		notifiers = append(notifiers, kafkaNotifier)
	}
	dispatcher := notify.NewDispatcher(conf.ApplicationConfig.NotifyWorkers, conf.ApplicationConfig.NotifyQueueSize, notifiers...)
	zap.L().Info("通知渠道初始化成功", zap.Int("notifiers", len(notifiers)))

	// 7. 初始化 Service 与 Handler（依赖注入）
	svc := service.NewServices(repos, dispatcher, conf.ApplicationConfig.MaxActiveApplications)
	engine := https_server.Init(handler.NewHandlers(svc, hub), conf)

	// 8. 启动服务
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务已启动", zap.String("addr", srv.Addr))

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown error", zap.Error(err))
	}
	// 先停止接收请求，再排空通知队列
	dispatcher.Close()
	hub.Close()
	if kafkaNotifier != nil {
		kafkaNotifier.Close()
	}
	zap.L().Info("服务器已关闭")
	_ = zap.L().Sync()
}

// initStorage 根据配置选择 MySQL 或内存存储
func initStorage(conf *config.Config) (*repository.Repositories, error) {
	switch conf.StorageConfig.Driver {
	case "memory":
		store := memory.NewStore(memory.WithLockTimeout(conf.RequestTimeout()))
		seedDemo(store)
		return store.Repositories(), nil
	case "mysql":
		return dao.Init(&conf.MysqlConfig)
	}
	return nil, fmt.Errorf("unknown storage driver %q", conf.StorageConfig.Driver)
}

// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找，敏感项可由 .env / 环境变量覆盖
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
	"github.com/joho/godotenv"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName               string `toml:"appName"`               // 应用名称，用于日志标识等
	Host                  string `toml:"host"`                  // 服务器监听地址，如 "0.0.0.0"
	Port                  int    `toml:"port"`                  // 服务器监听端口，如 8000
	Mode                  string `toml:"mode"`                  // 运行模式：dev / release
	RequestTimeoutSeconds int    `toml:"requestTimeoutSeconds"` // 单个请求的处理时限（含锁等待）
	TLSRedirect           bool   `toml:"tlsRedirect"`           // 是否将 HTTP 请求重定向到 HTTPS
}

// StorageConfig 存储驱动选择
type StorageConfig struct {
	Driver string `toml:"driver"` // mysql 或 memory（本地演示/测试）
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`  // 关闭时目录查询直接走数据库
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// SmsConfig 状态变更短信通知配置（阿里云 SMS）
type SmsConfig struct {
	AccessKeyID        string `toml:"accessKeyID"`        // 阿里云 AccessKey ID
	AccessKeySecret    string `toml:"accessKeySecret"`    // 阿里云 AccessKey Secret
	SignName           string `toml:"signName"`           // 短信签名名称
	StatusTemplateCode string `toml:"statusTemplateCode"` // 申请状态变更模板 Code
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig Kafka 通知投递配置
type KafkaConfig struct {
	NotifyMode  string        `toml:"notifyMode"`  // 通知模式："log" 或 "kafka"
	HostPort    string        `toml:"hostPort"`    // Kafka 服务器地址，如 "localhost:9092"
	NotifyTopic string        `toml:"notifyTopic"` // 通知事件主题
	Partition   int           `toml:"partition"`   // 分区数
	Timeout     time.Duration `toml:"timeout"`     // 写超时（秒）
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret            string `toml:"secret"`            // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry int    `toml:"accessTokenExpiry"` // Access Token 有效期（分钟）
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 雪花算法节点 ID，范围 0-1023，分布式部署时每台机器需唯一
}

// ApplicationConfig 领养申请业务参数
type ApplicationConfig struct {
	MaxActiveApplications int `toml:"maxActiveApplications"` // 每个申请人同时进行中的申请上限
	NotifyWorkers         int `toml:"notifyWorkers"`         // 通知投递协程数
	NotifyQueueSize       int `toml:"notifyQueueSize"`       // 通知队列长度
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig        `toml:"mainConfig"`        // 主配置
	StorageConfig     `toml:"storageConfig"`     // 存储配置
	MysqlConfig       `toml:"mysqlConfig"`       // MySQL 配置
	RedisConfig       `toml:"redisConfig"`       // Redis 配置
	SmsConfig         `toml:"smsConfig"`         // 短信配置
	LogConfig         `toml:"logConfig"`         // 日志配置
	KafkaConfig       `toml:"kafkaConfig"`       // Kafka 配置
	JWTConfig         `toml:"jwtConfig"`         // JWT 配置
	SnowflakeConfig   `toml:"snowflakeConfig"`   // 雪花算法配置
	ApplicationConfig `toml:"applicationConfig"` // 申请业务配置
}

// 环境变量覆盖项
const (
	EnvMysqlPassword = "CATADOPT_MYSQL_PASSWORD"
	EnvJWTSecret     = "CATADOPT_JWT_SECRET"
	EnvSmsMode       = "CATADOPT_SMS_MODE"
)

var (
	config     *Config
	configOnce sync.Once
)

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig(conf *Config) error {
	paths := []string{
		"configs/config_local.toml",       // 本地开发配置（优先）
		"configs/config.toml",             // 默认配置
		"../../configs/config_local.toml", // 从子目录运行时的路径
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, conf); err == nil {
			return nil
		}
	}
	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// applyEnv 用 .env 与环境变量覆盖敏感配置
func applyEnv(conf *Config) {
	_ = godotenv.Load() // .env 不存在时忽略
	if v := strings.TrimSpace(os.Getenv(EnvMysqlPassword)); v != "" {
		conf.MysqlConfig.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTSecret)); v != "" {
		conf.JWTConfig.Secret = v
	}
}

// applyDefaults 填充未配置项
func applyDefaults(conf *Config) {
	if conf.MainConfig.Mode == "" {
		conf.MainConfig.Mode = "dev"
	}
	if conf.MainConfig.RequestTimeoutSeconds <= 0 {
		conf.MainConfig.RequestTimeoutSeconds = 10
	}
	if conf.StorageConfig.Driver == "" {
		conf.StorageConfig.Driver = "mysql"
	}
	if conf.KafkaConfig.NotifyMode == "" {
		conf.KafkaConfig.NotifyMode = "log"
	}
	if conf.JWTConfig.AccessTokenExpiry <= 0 {
		conf.JWTConfig.AccessTokenExpiry = 60
	}
	if conf.ApplicationConfig.MaxActiveApplications <= 0 {
		conf.ApplicationConfig.MaxActiveApplications = 3
	}
	if conf.ApplicationConfig.NotifyWorkers <= 0 {
		conf.ApplicationConfig.NotifyWorkers = 4
	}
	if conf.ApplicationConfig.NotifyQueueSize <= 0 {
		conf.ApplicationConfig.NotifyQueueSize = 1000
	}
}

// RequestTimeout 单个请求的处理时限
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.MainConfig.RequestTimeoutSeconds) * time.Second
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	configOnce.Do(func() {
		conf := new(Config)
		_ = LoadConfig(conf) // 忽略加载错误，使用默认值
		applyEnv(conf)
		applyDefaults(conf)
		config = conf
	})
	return config
}

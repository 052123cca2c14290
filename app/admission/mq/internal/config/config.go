package config

import (
	"time"

	"admission-platform/common/utils/email"
)

// Config 通知分发服务配置
type Config struct {
	Name string
	Mode string

	// Prometheus 指标监听地址
	MetricsAddr string `json:",default=0.0.0.0:9891"`

	// 数据库（通知表 + 用户目录）
	MySQL MySQLConfig

	// Redis配置
	Redis RedisConf

	// 消息中间件配置
	Messaging MessageConf

	// 邮件网关配置
	Email email.Config
}

// MySQLConfig 数据库配置
type MySQLConfig struct {
	Host            string `json:",default=127.0.0.1"`
	Port            int    `json:",default=3306"`
	Username        string
	Password        string
	Database        string
	MaxOpenConns    int `json:",default=50"`
	MaxIdleConns    int `json:",default=10"`
	ConnMaxLifetime int `json:",default=3600"`
}

// RedisConf Redis配置
type RedisConf struct {
	Host string
	Pass string
	DB   int
}

// MessageConf 消息中间件配置
type MessageConf struct {
	ServiceName   string      // 服务名称（用作消费者组名）
	EnableMetrics bool        // 启用指标
	Retry         RetryConfig // 重试配置
}

// RetryConfig 重试配置
type RetryConfig struct {
	MaxRetries      int           `json:",default=3"`
	InitialInterval time.Duration `json:",default=100ms"`
	MaxInterval     time.Duration `json:",default=10s"`
	Multiplier      float64       `json:",default=2.0"`
}

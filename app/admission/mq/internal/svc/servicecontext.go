package svc

import (
	"fmt"
	"log"
	"time"

	"admission-platform/app/admission/model"
	"admission-platform/app/admission/mq/internal/config"
	"admission-platform/common/messaging"
	"admission-platform/common/utils/email"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ServiceContext 通知分发服务上下文
type ServiceContext struct {
	Config config.Config

	// 数据访问
	DB                *gorm.DB
	NotificationModel model.NotificationModel
	UserModel         *model.UserModel

	// 邮件网关
	Email email.Gateway

	// 消息中间件客户端
	MsgClient *messaging.Client
}

// NewServiceContext 创建服务上下文
func NewServiceContext(c config.Config) *ServiceContext {
	db := initDB(c.MySQL)

	msgClient, err := initMessaging(c)
	if err != nil {
		log.Fatalf("消息中间件初始化失败: %v", err)
	}

	return &ServiceContext{
		Config: c,

		DB:                db,
		NotificationModel: model.NewNotificationModel(db),
		UserModel:         model.NewUserModel(db),

		Email: email.NewSMTPGateway(c.Email),

		MsgClient: msgClient,
	}
}

// initDB 初始化数据库连接
func initDB(mysqlConf config.MySQLConfig) *gorm.DB {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		mysqlConf.Username,
		mysqlConf.Password,
		mysqlConf.Host,
		mysqlConf.Port,
		mysqlConf.Database,
	)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logx.Errorf("连接数据库失败: %v", err)
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(mysqlConf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(mysqlConf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(mysqlConf.ConnMaxLifetime) * time.Second)

	logx.Info("数据库连接成功")
	return db
}

// initMessaging 初始化消息中间件
func initMessaging(c config.Config) (*messaging.Client, error) {
	msgConfig := messaging.Config{
		Redis: messaging.RedisConfig{
			Addr:     c.Redis.Host,
			Password: c.Redis.Pass,
			DB:       c.Redis.DB,
		},
		ServiceName:   c.Messaging.ServiceName,
		EnableMetrics: c.Messaging.EnableMetrics,
		RetryConfig: messaging.RetryConfig{
			MaxRetries:      c.Messaging.Retry.MaxRetries,
			InitialInterval: c.Messaging.Retry.InitialInterval,
			MaxInterval:     c.Messaging.Retry.MaxInterval,
			Multiplier:      c.Messaging.Retry.Multiplier,
		},
	}

	client, err := messaging.NewClient(msgConfig)
	if err != nil {
		return nil, fmt.Errorf("创建消息客户端失败: %w", err)
	}

	return client, nil
}

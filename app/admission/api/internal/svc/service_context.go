package svc

import (
	"fmt"
	"time"

	"admission-platform/app/admission/api/internal/config"
	"admission-platform/app/admission/api/internal/mq"
	"admission-platform/app/admission/model"
	"admission-platform/common/messaging"
	"admission-platform/common/middleware"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/zeromicro/go-zero/core/breaker"
	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config config.Config

	// 数据存储
	DB    *gorm.DB     // MySQL 连接
	Redis *redis.Redis // Redis 客户端（限流器）

	// 高并发、熔断限流组件
	JoinLimiter *limit.TokenLimiter
	JoinBreaker breaker.Breaker

	// Model 层
	EventModel         *model.EventModel
	ParticipationModel *model.ParticipationModel
	RejectionModel     *model.RejectionRecordModel
	UserModel          *model.UserModel

	// 消息发布器（nil 安全，MQ 不可用时业务继续）
	Producer *mq.Producer

	// 中间件
	StaffAuth       rest.Middleware // 管理员/工作人员权限
	ParticipantAuth rest.Middleware // 普通参与者权限
}

func NewServiceContext(c config.Config) *ServiceContext {
	// 1. 初始化数据库连接
	db := initDB(c.MySQL)

	// 2. 初始化 Redis（限流器用 go-zero 客户端）
	rds := initRedis(c.Redis)

	// 3. Token 黑名单校验用 go-redis 客户端（与用户服务登出逻辑共用键空间）
	authRedis := redisv8.NewClient(&redisv8.Options{
		Addr:     c.Redis.Host,
		Password: c.Redis.Pass,
	})

	// 4. 初始化限流/熔断
	joinLimiter := limit.NewTokenLimiter(
		c.JoinLimit.Rate,
		c.JoinLimit.Burst,
		rds,
		"admission:join:limiter",
	)
	joinBreaker := breaker.NewBreaker(
		breaker.WithName(c.JoinBreaker.Name),
	)

	// 5. 初始化消息客户端（失败降级：只记日志，Producer 为 nil）
	producer := initProducer(c.Messaging)

	return &ServiceContext{
		Config: c,

		DB:    db,
		Redis: rds,

		JoinLimiter: joinLimiter,
		JoinBreaker: joinBreaker,

		EventModel:         model.NewEventModel(db),
		ParticipationModel: model.NewParticipationModel(db),
		RejectionModel:     model.NewRejectionRecordModel(db),
		UserModel:          model.NewUserModel(db),

		Producer: producer,

		StaffAuth:       middleware.NewStaffAuthMiddleware(db, authRedis, c.Auth.AccessSecret).Handle,
		ParticipantAuth: middleware.NewParticipantAuthMiddleware(db, authRedis, c.Auth.AccessSecret).Handle,
	}
}

// 初始化函数

// initDB 初始化数据库连接
func initDB(mysqlConf config.MySQLConfig) *gorm.DB {
	dsn := buildMySQLDSN(mysqlConf)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info), // 开发环境打印 SQL
	})
	if err != nil {
		logx.Errorf("连接数据库失败: %v", err)
		panic(err)
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	maxOpenConns := mysqlConf.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 100
	}
	maxIdleConns := mysqlConf.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10
	}
	connMaxLifetime := mysqlConf.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 3600
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	logx.Info("数据库连接成功")
	return db
}

// initRedis 初始化 Redis 连接
func initRedis(c redis.RedisConf) *redis.Redis {
	rds := redis.MustNewRedis(c)
	logx.Info("Redis 连接成功")
	return rds
}

// initProducer 初始化消息发布器
// MQ 属于旁路通知，连接失败不阻塞 API 启动
func initProducer(c messaging.Config) *mq.Producer {
	client, err := messaging.NewClient(c)
	if err != nil {
		logx.Errorf("消息客户端初始化失败（通知降级为不发送）: %v", err)
		return nil
	}
	return mq.NewProducer(client)
}

func buildMySQLDSN(c config.MySQLConfig) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

package main

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appissue "github.com/xiebiao/library/internal/application/issue"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/mq"
)

// 需要从Config提取参数或带cleanup的Provider

func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := rdb.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

// providePublisher 事件发布者
// mq.enabled为false或连接失败时使用NopPublisher，借阅台账不依赖RabbitMQ
func providePublisher(cfg *config.Config) (mq.MessagePublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		slog.Warn("rabbitmq unavailable, circulation events disabled", "error", err)
		return mq.NopPublisher{}, func() {}, nil
	}

	breaker := mq.NewBreakerPublisher("rabbitmq", pub, mq.BreakerSettings{
		MaxFailures: cfg.MQ.BreakerFailures,
		OpenTimeout: cfg.MQ.BreakerTimeout,
	})
	return breaker, func() { breaker.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func providePolicy(cfg *config.Config) appissue.Policy {
	return appissue.NewPolicy(cfg.Circulation)
}

func provideNotifier(pub mq.MessagePublisher, cfg *config.Config) *appissue.Notifier {
	return appissue.NewNotifier(pub, cfg.MQ.PublishTimeout)
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(userService user.Service, jwtManager *jwt.Manager, store appuser.SessionStore, cfg *config.Config) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, store, cfg.JWT.RefreshTokenExpire)
}

func provideLogoutUseCase(store appuser.SessionStore, jwtManager *jwt.Manager) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(store, jwtManager.AccessTokenTTL())
}

func provideHealthHandler(db *gorm.DB, client *goredis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(map[string]handler.HealthCheck{
		"database": rdb.Ping(db),
		"redis": func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	})
}

//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/library/internal/application/book"
	appissue "github.com/xiebiao/library/internal/application/issue"
	appmember "github.com/xiebiao/library/internal/application/member"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、消息发布
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	providePublisher,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	rdb.NewUserRepository,
	rdb.NewBookRepository,
	rdb.NewMemberRepository,
	rdb.NewIssueRepository,
	rdb.NewTxManager,
	wire.Bind(new(appissue.TxManager), new(*rdb.TxManager)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	member.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	provideJWTManager,
	providePolicy,
	provideNotifier,
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appmember.NewRegisterMemberUseCase,
	appmember.NewQueryMembersUseCase,
	appmember.NewChangeStatusUseCase,
	appissue.NewIssueBookUseCase,
	appissue.NewReturnBookUseCase,
	appissue.NewPayFineUseCase,
	appissue.NewQueryIssuesUseCase,
)

// interfaceSet HTTP处理器、中间件、路由
var interfaceSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewMemberHandler,
	handler.NewIssueHandler,
	provideHealthHandler,
	middleware.NewAuthMiddleware,
	wire.Struct(new(router.Handlers), "*"),
	router.NewRouter,
)

// InitializeApp 组装整个应用
// 返回的cleanup按创建的逆序关闭消息连接、Redis、数据库
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}

package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
)

// RegisterUseCase 创建馆员账号
// 业务规则：
// 1. 系统中还没有任何账号时，第一个注册的账号自动成为admin（初始化）
// 2. 之后只有admin可以创建账号
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
	Role     string

	// ActorRole 发起请求的馆员角色（来自JWT），未登录时为空
	ActorRole string
}

// RegisterResponse 注册响应，不返回密码
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	hasAccounts, err := uc.userService.HasAccounts(ctx)
	if err != nil {
		return nil, err
	}

	role := user.Role(req.Role)
	if !hasAccounts {
		role = user.RoleAdmin
	} else {
		switch user.Role(req.ActorRole) {
		case user.RoleAdmin:
		case "":
			return nil, apperrors.ErrUnauthorized
		default:
			return nil, apperrors.ErrForbidden
		}
	}

	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Nickname, role)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "staff account created", "user_id", u.ID, "role", u.Role, "bootstrap", !hasAccounts)
	return &RegisterResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Role:     string(u.Role),
	}, nil
}

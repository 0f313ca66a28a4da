package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 馆员账号领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现
type Service interface {
	// Register 创建馆员账号
	Register(ctx context.Context, email, password, nickname string, role Role) (*User, error)

	// Login 校验邮箱密码
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error

	// HasAccounts 是否已有账号
	HasAccounts(ctx context.Context) (bool, error)
}

// BcryptCost 密码哈希强度
// 测试中可调低以加快速度
var BcryptCost = 12

type service struct {
	repo Repository
}

// NewService 创建馆员账号服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 创建馆员账号
// 业务规则：
// 1. 邮箱格式校验，统一转小写
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, email, password, nickname string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "Please provide a valid email")
	}

	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	nickname = strings.TrimSpace(nickname)
	if len(nickname) < 2 || len(nickname) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "Nickname must be 2-50 characters")
	}

	if role == "" {
		role = RoleLibrarian
	}
	if !role.Valid() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "Role must be admin or librarian")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to hash password")
	}

	user := NewUser(email, string(hashedPassword), nickname, role)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验邮箱密码
// 账号不存在与密码错误返回同一个错误，不暴露邮箱是否注册
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(user.Password, password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "Failed to verify password")
	}
	return nil
}

func (s *service) HasAccounts(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var (
	emailPattern  = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}

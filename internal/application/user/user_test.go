package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

func init() {
	user.BcryptCost = 4
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users []*user.User
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.ID = uint(len(r.users) + 1)
	r.users = append(r.users, u)
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memoryUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type memorySessionStore struct {
	sessions  map[uint]map[string]interface{}
	blacklist map[string]time.Duration
	saveErr   error
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions:  make(map[uint]map[string]interface{}),
		blacklist: make(map[string]time.Duration),
	}
}

func (s *memorySessionStore) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[userID] = data
	return nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, userID uint) error {
	delete(s.sessions, userID)
	return nil
}

func (s *memorySessionStore) AddToBlacklist(_ context.Context, token string, ttl time.Duration) error {
	s.blacklist[token] = ttl
	return nil
}

func TestRegisterUseCase(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(&memoryUserRepo{})
	uc := NewRegisterUseCase(svc)

	t.Run("第一个账号自动成为admin", func(t *testing.T) {
		resp, err := uc.Execute(ctx, RegisterRequest{
			Email:    "root@library.org",
			Password: "secret123",
			Nickname: "Root",
			Role:     "librarian",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("未登录不能再注册", func(t *testing.T) {
		_, err := uc.Execute(ctx, RegisterRequest{Email: "x@library.org", Password: "secret123", Nickname: "X"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("librarian不能创建账号", func(t *testing.T) {
		_, err := uc.Execute(ctx, RegisterRequest{
			Email:     "y@library.org",
			Password:  "secret123",
			Nickname:  "Y",
			ActorRole: "librarian",
		})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("admin创建librarian", func(t *testing.T) {
		resp, err := uc.Execute(ctx, RegisterRequest{
			Email:     "desk@library.org",
			Password:  "secret123",
			Nickname:  "Front Desk",
			ActorRole: "admin",
		})
		require.NoError(t, err)
		assert.Equal(t, "librarian", resp.Role)
	})
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(&memoryUserRepo{})
	_, err := svc.Register(ctx, "desk@library.org", "secret123", "Desk", user.RoleLibrarian)
	require.NoError(t, err)

	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	sessions := newMemorySessionStore()
	login := NewLoginUseCase(svc, manager, sessions, 24*time.Hour)
	logout := NewLogoutUseCase(sessions, manager.AccessTokenTTL())

	t.Run("密码错误", func(t *testing.T) {
		_, err := login.Execute(ctx, LoginRequest{Email: "desk@library.org", Password: "wrong1234"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("登录成功,Token携带角色", func(t *testing.T) {
		resp, err := login.Execute(ctx, LoginRequest{Email: "DESK@library.org", Password: "secret123", ClientIP: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, "librarian", resp.User.Role)
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		claims, err := manager.ParseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "librarian", claims.Role)
		assert.Equal(t, "10.0.0.1", sessions.sessions[resp.User.ID]["ip"])

		require.NoError(t, logout.Execute(ctx, resp.User.ID, resp.AccessToken))
		assert.NotContains(t, sessions.sessions, resp.User.ID)
		assert.Equal(t, time.Hour, sessions.blacklist[resp.AccessToken])
	})

	t.Run("会话保存失败不影响登录", func(t *testing.T) {
		sessions.saveErr = errors.New("redis down")
		defer func() { sessions.saveErr = nil }()

		resp, err := login.Execute(ctx, LoginRequest{Email: "desk@library.org", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})
}

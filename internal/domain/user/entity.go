package user

import (
	"time"
)

// Role 馆员角色
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
)

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleLibrarian
}

// User 馆员账号（聚合根）
// 设计说明：
// 1. 借阅台账的所有写操作都需要馆员登录，Role写入JWT由中间件校验
// 2. 密码以bcrypt哈希存储，实体不暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建馆员账号（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, nickname string, role Role) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

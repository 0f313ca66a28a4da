package issue

import (
	"context"
	"time"
)

// Repository 借阅仓储接口
// 事务通过context传递：借出、归还、缴费在同一事务中锁定并更新借阅、图书、会员三类记录
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, issue *Issue) error

	// FindByID 根据ID查找
	FindByID(ctx context.Context, id uint) (*Issue, error)

	// LockByID 悲观锁查询（SELECT FOR UPDATE）
	LockByID(ctx context.Context, id uint) (*Issue, error)

	// Update 更新归还信息、状态、罚款
	Update(ctx context.Context, issue *Issue) error

	// List 按借出日期倒序查询
	List(ctx context.Context, params ListParams) ([]*Issue, error)

	// SumOutstandingFines 会员未缴罚款合计
	SumOutstandingFines(ctx context.Context, memberID uint) (int64, error)
}

// ListParams 列表过滤条件，零值表示不过滤
type ListParams struct {
	Status    Status
	MemberID  uint
	DueBefore time.Time
}

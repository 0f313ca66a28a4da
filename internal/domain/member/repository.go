package member

import (
	"context"
)

// Repository 会员仓储接口
type Repository interface {
	Create(ctx context.Context, m *Member) error

	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindByIDs 批量查找，不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Member, error)

	List(ctx context.Context, params ListParams) ([]*Member, error)

	// UpdateStatus 只更新会员状态
	UpdateStatus(ctx context.Context, m *Member) error

	// LockByID 悲观锁查询（SELECT FOR UPDATE），借阅台账在事务内使用
	LockByID(ctx context.Context, id uint) (*Member, error)

	// UpdateCounters 写回CurrentBooksIssued和TotalFine
	// 必须在LockByID之后、同一事务内调用
	UpdateCounters(ctx context.Context, m *Member) error
}

// ListParams 列表查询参数
type ListParams struct {
	Keyword string // 姓名、邮箱、会员号
	Status  Status
}

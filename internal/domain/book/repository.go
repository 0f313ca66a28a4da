package book

import (
	"context"
)

// Repository 馆藏仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 事务通过context传递，借阅台账的锁定与计数器更新必须在同一事务中调用
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找（借阅列表展开引用时使用），不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update 更新图书信息和总数
	// 不直接写回AvailableCopies，可借数按总数的变化量在数据库内调整，
	// 并发借出、归还的计数变化不会被覆盖
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书，仍有副本借出时返回ErrCopiesOutstanding
	Delete(ctx context.Context, id uint) error

	// List 查询图书列表，按创建时间倒序
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// LockByID 悲观锁查询图书（SELECT FOR UPDATE）
	// 借出、归还时锁定行，防止两个并发借阅同时读到最后一个副本
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateAvailability 写回可借副本数
	// 必须在LockByID之后、同一事务内调用
	UpdateAvailability(ctx context.Context, book *Book) error
}

// ListParams 列表查询参数
type ListParams struct {
	Keyword  string   // 搜索关键词（书名、作者、ISBN）
	Category Category // 按分类过滤
}

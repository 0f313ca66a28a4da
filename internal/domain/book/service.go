package book

import (
	"context"
)

// Service 馆藏领域服务
// 封装图书的增删改查及跨字段校验；借阅相关的计数器变化不经过此服务，由借阅台账在事务内直接调用仓储
type Service interface {
	AddBook(ctx context.Context, b *Book) error
	GetBook(ctx context.Context, id uint) (*Book, error)
	ListBooks(ctx context.Context, params ListParams) ([]*Book, error)
	UpdateBook(ctx context.Context, id uint, patch Patch) (*Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

// Patch 图书更新内容，零值表示不修改
type Patch struct {
	Title       string
	Author      string
	ISBN        string
	Category    Category
	ItemType    ItemType
	TotalCopies int
	PublishYear int
	Publisher   string
}

type service struct {
	repo Repository
}

// NewService 创建馆藏领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 图书入库
// ISBN唯一性由数据库唯一索引保证，仓储把冲突转换为ErrISBNDuplicate
func (s *service) AddBook(ctx context.Context, b *Book) error {
	return s.repo.Create(ctx, b)
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, error) {
	return s.repo.List(ctx, params)
}

// UpdateBook 更新图书
// 调整总数时保持借出数量不变；需在事务内调用，LockByID锁定的行在提交前不会被借出、归还修改
func (s *service) UpdateBook(ctx context.Context, id uint, patch Patch) (*Book, error) {
	b, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.UpdateInfo(patch.Title, patch.Author, patch.ISBN, patch.Category, patch.ItemType, patch.PublishYear, patch.Publisher); err != nil {
		return nil, err
	}
	if patch.TotalCopies != 0 {
		if err := b.SetTotalCopies(patch.TotalCopies); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
// 仍有副本借出时拒绝，避免借阅记录引用悬空；与UpdateBook一样需在事务内调用
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	b, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return err
	}
	if b.LentCopies() > 0 {
		return ErrCopiesOutstanding
	}
	return s.repo.Delete(ctx, id)
}

package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

// TxManager 事务管理器，由rdb.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UpdateBookUseCase 修改图书
// 零值字段不修改；调整总数时借出数量保持不变
// 锁定图书行后再修改，与借出、归还串行
type UpdateBookUseCase struct {
	bookService book.Service
	txManager   TxManager
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service, txManager TxManager) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, txManager: txManager}
}

// UpdateBookRequest 修改请求DTO
type UpdateBookRequest struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Category    string
	ItemType    string
	TotalCopies int
	PublishYear int
	Publisher   string
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	patch := book.Patch{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    book.Category(req.Category),
		ItemType:    book.ItemType(req.ItemType),
		TotalCopies: req.TotalCopies,
		PublishYear: req.PublishYear,
		Publisher:   req.Publisher,
	}

	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.UpdateBook(ctx, req.ID, patch)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(updated), nil
}

// DeleteBookUseCase 删除图书，仍有副本借出时拒绝
type DeleteBookUseCase struct {
	bookService book.Service
	txManager   TxManager
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, txManager TxManager) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, txManager: txManager}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		return uc.bookService.DeleteBook(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).InfoContext(ctx, "book deleted", "book_id", id)
	return nil
}

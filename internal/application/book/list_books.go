package book

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表与搜索
// 搜索匹配书名、作者、ISBN，不区分大小写
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Keyword  string
	Category string
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookResponse, error) {
	category := book.Category(strings.TrimSpace(req.Category))
	if category != "" && !category.Valid() {
		return nil, book.ErrInvalidCategory
	}

	books, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Keyword:  strings.TrimSpace(req.Keyword),
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	return list, nil
}

package book

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
)

// AddBookUseCase 图书入库用例
// 应用层只做流程编排，字段校验由领域工厂NewBook完成
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建入库用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

// AddBookRequest 入库请求DTO
type AddBookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Category    string
	ItemType    string
	TotalCopies int // 0表示1本
	PublishYear int
	Publisher   string
}

// BookResponse 图书DTO
type BookResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn,omitempty"`
	Category        string    `json:"category"`
	ItemType        string    `json:"itemType"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	PublishYear     int       `json:"publishYear,omitempty"`
	Publisher       string    `json:"publisher,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Execute 执行入库
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookResponse, error) {
	b, err := book.NewBook(
		req.Title,
		req.Author,
		req.ISBN,
		book.Category(req.Category),
		book.ItemType(req.ItemType),
		req.TotalCopies,
		req.PublishYear,
		req.Publisher,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.bookService.AddBook(ctx, b); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "book added", "book_id", b.ID, "title", b.Title, "copies", b.TotalCopies)
	return toBookResponse(b), nil
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        string(b.Category),
		ItemType:        string(b.ItemType),
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		PublishYear:     b.PublishYear,
		Publisher:       b.Publisher,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

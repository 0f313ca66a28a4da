package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 馆藏仓储实现
// 负责domain实体与GORM模型之间的转换，把ISBN冲突等数据库错误转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建馆藏仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "Failed to create book")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query book")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []BookModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to query books")
	}
	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

// Update 更新图书信息（含副本数）
// available_copies = available_copies + 新总数 - 旧总数，借出数保持不变；
// GORM按列名排序生成SET，available_copies先于total_copies赋值，MySQL按顺序求值时读到的仍是旧总数
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	b.UpdatedAt = time.Now()
	result := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND available_copies + ? - total_copies >= 0", b.ID, b.TotalCopies).
		Updates(map[string]interface{}{
			"title":            b.Title,
			"author":           b.Author,
			"isbn":             nullableString(b.ISBN),
			"category":         string(b.Category),
			"item_type":        string(b.ItemType),
			"publish_year":     b.PublishYear,
			"publisher":        b.Publisher,
			"available_copies": gorm.Expr("available_copies + ? - total_copies", b.TotalCopies),
			"total_copies":     b.TotalCopies,
			"updated_at":       b.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "Failed to update book")
	}
	if result.RowsAffected == 0 {
		if err := r.ensureExists(ctx, b.ID); err != nil {
			return err
		}
		return book.ErrCopiesBelowLent
	}

	var model BookModel
	if err := conn(ctx, r.db).Select("available_copies").First(&model, b.ID).Error; err != nil {
		return apperrors.Wrap(err, "Failed to query book")
	}
	b.AvailableCopies = model.AvailableCopies
	return nil
}

// Delete 删除图书
// WHERE条件保证只删除全部在馆的图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Where("available_copies = total_copies").Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete book")
	}
	if result.RowsAffected == 0 {
		if err := r.ensureExists(ctx, id); err != nil {
			return err
		}
		return book.ErrCopiesOutstanding
	}
	return nil
}

// ensureExists 条件更新未命中时区分“不存在”和“条件不满足”
func (r *bookRepository) ensureExists(ctx context.Context, id uint) error {
	var count int64
	if err := conn(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "Failed to query book")
	}
	if count == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 查询图书列表
// 关键词匹配书名、作者、ISBN，不区分大小写
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	query := conn(ctx, r.db).Model(&BookModel{})

	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(author) LIKE ? ESCAPE '!' OR LOWER(isbn) LIKE ? ESCAPE '!'", kw, kw, kw)
	}
	if params.Category != "" {
		query = query.Where("category = ?", string(params.Category))
	}

	var models []BookModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// LockByID 悲观锁查询（SELECT ... FOR UPDATE）
// 必须在TxManager.Transaction内调用，否则锁在语句结束时即释放
// SQLite不支持FOR UPDATE,GORM的sqlite方言会忽略该子句，由数据库级写锁串行化
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to lock book")
	}
	return toBookEntity(&model), nil
}

// UpdateAvailability 写回可借副本数
// WHERE条件保证 0 <= available_copies <= total_copies
func (r *bookRepository) UpdateAvailability(ctx context.Context, b *book.Book) error {
	if b.AvailableCopies < 0 {
		return errAvailabilityOutOfRange
	}
	b.UpdatedAt = time.Now()
	result := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND total_copies >= ?", b.ID, b.AvailableCopies).
		Updates(map[string]interface{}{
			"available_copies": b.AvailableCopies,
			"updated_at":       b.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update book availability")
	}
	if result.RowsAffected == 0 {
		return errAvailabilityOutOfRange
	}
	return nil
}

var errAvailabilityOutOfRange = apperrors.New(apperrors.ErrCodeDatabaseError, "Book availability out of range")

// =========================================
// 辅助函数：模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            nullableString(b.ISBN),
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

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Author:          model.Author,
		ISBN:            derefString(model.ISBN),
		Category:        book.Category(model.Category),
		ItemType:        book.ItemType(model.ItemType),
		TotalCopies:     model.TotalCopies,
		AvailableCopies: model.AvailableCopies,
		PublishYear:     model.PublishYear,
		Publisher:       model.Publisher,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

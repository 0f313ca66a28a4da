package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 馆藏领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists")

	// ErrNoCopiesAvailable 无可借副本
	ErrNoCopiesAvailable = apperrors.New(apperrors.ErrCodeNoCopiesAvailable, "No copies available for this book")

	// ErrTitleAuthorRequired 书名、作者必填
	ErrTitleAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Please provide book title and author name")

	// ErrInvalidCategory 分类不合法
	ErrInvalidCategory = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid book category")

	// ErrInvalidItemType 馆藏类型不合法
	ErrInvalidItemType = apperrors.New(apperrors.ErrCodeInvalidParams, "Item type must be Book, Movie or Magazine")

	// ErrInvalidCopies 副本数不合法
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "Total copies must be at least 1")

	// ErrCopiesBelowLent 总数少于借出数
	ErrCopiesBelowLent = apperrors.New(apperrors.ErrCodeBusinessError, "Total copies cannot be less than the copies currently issued")

	// ErrCopiesOutstanding 仍有副本借出，不能删除
	ErrCopiesOutstanding = apperrors.New(apperrors.ErrCodeBooksOutstanding, "Book cannot be deleted while copies are issued")
)

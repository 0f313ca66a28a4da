package issue

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrIssueRequestInvalid 借出参数缺失
	ErrIssueRequestInvalid = apperrors.New(apperrors.ErrCodeInvalidParams, "Book ID, Member ID, and Due Date are required")

	// ErrIssueIDRequired 归还、缴费缺少借阅ID
	ErrIssueIDRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Issue ID is required")

	// ErrIssueNotFound 借阅记录不存在
	ErrIssueNotFound = apperrors.New(apperrors.ErrCodeIssueNotFound, "Issue record not found")

	// ErrAlreadyReturned 已归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "Book has already been returned")

	// ErrNoFineToPay 没有待缴罚款
	ErrNoFineToPay = apperrors.New(apperrors.ErrCodeNoFineDue, "No fine to pay for this issue")

	// ErrIssueNumberDuplicate 借阅编号冲突
	ErrIssueNumberDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Issue number already exists")
)

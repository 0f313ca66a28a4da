package dto

import (
	"strings"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// IssueBookRequest HTTP层借出请求
// 必填校验交给用例，保证缺字段时返回统一的提示
type IssueBookRequest struct {
	BookID   uint   `json:"bookId" example:"1"`
	MemberID uint   `json:"memberId" example:"1"`
	DueDate  string `json:"dueDate" example:"2025-03-24"` // RFC3339或YYYY-MM-DD
	Remarks  string `json:"remarks" binding:"max=500"`
}

// IssueIDRequest 归还、缴费请求
type IssueIDRequest struct {
	IssueID uint `json:"issueId" example:"1"`
}

// ErrInvalidDueDate 应还日期格式错误
var ErrInvalidDueDate = apperrors.New(apperrors.ErrCodeInvalidParams, "Due date must be YYYY-MM-DD or RFC3339")

// ParseDate 解析日期
// 空字符串返回零值；只有日期部分时按UTC当天0点处理
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDueDate
}

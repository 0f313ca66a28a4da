package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（HTTP状态码由Code所在区间推导）
// 2. Message是用户友好的提示信息，直接返回给客户端
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 根据错误码区间推导HTTP状态码
//
//	400xx 业务规则冲突  → 400
//	401xx 认证失败      → 401（40104无权限 → 403）
//	404xx 资源不存在    → 404
//	409xx 参数错误      → 400
//	429xx 请求过于频繁  → 429
//	5xxxx 服务端错误    → 500
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == ErrCodeForbidden:
		return http.StatusForbidden
	case e.Code >= 40000 && e.Code < 40100:
		return http.StatusBadRequest
	case e.Code >= 40100 && e.Code < 40200:
		return http.StatusUnauthorized
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code >= 40900 && e.Code < 41000:
		return http.StatusBadRequest
	case e.Code >= 42900 && e.Code < 43000:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WithMessage 复制错误并替换提示信息（保留错误码）
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeUserNotFound   = 40401 // 馆员账号不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeMemberNotFound = 40403 // 会员不存在
	ErrCodeIssueNotFound  = 40404 // 借阅记录不存在
	ErrCodeRouteNotFound  = 40405 // 路由不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError      = 40000 // 业务错误（通用）
	ErrCodeNoCopiesAvailable  = 40001 // 无可借副本
	ErrCodeMembershipInactive = 40002 // 会员状态非Active
	ErrCodeBorrowLimitReached = 40003 // 已达借阅上限
	ErrCodeAlreadyReturned    = 40004 // 已归还
	ErrCodeBooksOutstanding   = 40005 // 仍有副本借出
	ErrCodeEmailDuplicate     = 40006 // 邮箱已存在
	ErrCodeISBNDuplicate      = 40007 // ISBN已存在
	ErrCodeWeakPassword       = 40008 // 密码强度不足
	ErrCodeDuplicateEntry     = 40009 // 重复记录（通用）

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeNoFineDue     = 40902 // 没有待缴罚款

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "Internal server error")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "Authentication required")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token has expired")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "Invalid email or password")
	ErrForbidden       = New(ErrCodeForbidden, "Insufficient permissions")

	// 资源不存在
	ErrUserNotFound  = New(ErrCodeUserNotFound, "Staff account not found")
	ErrRouteNotFound = New(ErrCodeRouteNotFound, "Route not found")

	// 业务规则
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "Email is already registered")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "Password must be 8-20 characters and contain letters and digits")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")

	// 限流
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

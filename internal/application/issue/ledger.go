package issue

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
)

// tracerName 借阅台账Span所属的Tracer
const tracerName = "library/application/issue"

// TxManager 事务管理器
// rdb.TxManager实现该接口；单元测试可以替换为内存实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Policy 借阅规则
type Policy struct {
	Fine issue.FinePolicy

	// StrictReturnGuard 为true时逾期归还（Overdue）的记录也不能再次归还
	StrictReturnGuard bool

	// DefaultLoanDays 借出请求未带应还日期时的借期，0表示应还日期必填
	DefaultLoanDays int
}

// NewPolicy 从配置构造借阅规则
func NewPolicy(cfg config.CirculationConfig) Policy {
	return Policy{
		Fine:              issue.NewFinePolicy(cfg.FinePerDay),
		StrictReturnGuard: cfg.StrictReturnGuard,
		DefaultLoanDays:   cfg.DefaultLoanDays,
	}
}

// clockNow 台账统一使用UTC并截断到毫秒，与数据库存储精度一致
func clockNow(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}

// =========================================
// 应用层DTO
// =========================================

// IssueResponse 借阅记录
type IssueResponse struct {
	ID          uint       `json:"id"`
	IssueNumber string     `json:"issueNumber"`
	BookID      uint       `json:"bookId"`
	MemberID    uint       `json:"memberId"`
	IssueDate   time.Time  `json:"issueDate"`
	DueDate     time.Time  `json:"dueDate"`
	ReturnDate  *time.Time `json:"returnDate"`
	Status      string     `json:"status"`
	Fine        int64      `json:"fine"`
	FinePaid    bool       `json:"finePaid"`
	Remarks     string     `json:"remarks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IssueDetail 展开图书和会员的借阅记录
// 引用的图书或会员已被删除时对应字段为null
type IssueDetail struct {
	IssueResponse
	Book   *BookRef   `json:"book"`
	Member *MemberRef `json:"member"`
}

// BookRef 借阅记录中展开的图书
type BookRef struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn,omitempty"`
	Category string `json:"category"`
	ItemType string `json:"itemType"`
}

// MemberRef 借阅记录中展开的会员
type MemberRef struct {
	ID           uint   `json:"id"`
	MemberNumber string `json:"memberNumber"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// ReturnBookResponse 归还结果
// FinePaid恒为false：刚归还的记录不可能已缴费
type ReturnBookResponse struct {
	Issue    IssueResponse `json:"issue"`
	Fine     int64         `json:"fine"`
	FinePaid bool          `json:"finePaid"`
}

func toIssueResponse(i *issue.Issue) IssueResponse {
	return IssueResponse{
		ID:          i.ID,
		IssueNumber: i.IssueNumber,
		BookID:      i.BookID,
		MemberID:    i.MemberID,
		IssueDate:   i.IssueDate,
		DueDate:     i.DueDate,
		ReturnDate:  i.ReturnDate,
		Status:      string(i.Status),
		Fine:        i.Fine,
		FinePaid:    i.FinePaid,
		Remarks:     i.Remarks,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toBookRef(b *book.Book) *BookRef {
	if b == nil {
		return nil
	}
	return &BookRef{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		ISBN:     b.ISBN,
		Category: string(b.Category),
		ItemType: string(b.ItemType),
	}
}

func toMemberRef(m *member.Member) *MemberRef {
	if m == nil {
		return nil
	}
	return &MemberRef{
		ID:           m.ID,
		MemberNumber: m.MemberNumber,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
	}
}

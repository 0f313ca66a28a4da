package issue

import (
	"time"
)

// Status 借阅状态
// Overdue表示"逾期归还并产生罚款"，在归还时写入；
// 尚未归还但已过应还日期的借阅仍是Issued，用IsOverdue判断
type Status string

const (
	StatusIssued   Status = "Issued"
	StatusReturned Status = "Returned"
	StatusOverdue  Status = "Overdue"
)

// Issue 借阅记录（聚合根）
// 生命周期：
//
//	借出 → Issued
//	归还 → Returned（未逾期） / Overdue（逾期，Fine>0）
//	缴纳罚款 → FinePaid=true
//
// 只保存BookID、MemberID，不直接持有Book、Member对象（避免跨聚合引用）
type Issue struct {
	ID          uint
	IssueNumber string
	BookID      uint
	MemberID    uint
	IssueDate   time.Time
	DueDate     time.Time
	ReturnDate  *time.Time
	Status      Status
	Fine        int64
	FinePaid    bool
	Remarks     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIssue 创建借阅记录（工厂方法），初始状态为Issued
func NewIssue(issueNumber string, bookID, memberID uint, issueDate, dueDate time.Time, remarks string) *Issue {
	return &Issue{
		IssueNumber: issueNumber,
		BookID:      bookID,
		MemberID:    memberID,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Status:      StatusIssued,
		Remarks:     remarks,
		CreatedAt:   issueDate,
		UpdatedAt:   issueDate,
	}
}

// IsActive 是否未归还
func (i *Issue) IsActive() bool {
	return i.Status == StatusIssued
}

// IsOverdue 未归还且已过应还日期
func (i *Issue) IsOverdue(now time.Time) bool {
	return i.IsActive() && now.After(i.DueDate)
}

// CheckReturnable 归还前校验
// 默认只拦截Returned;strict为true时Overdue（已逾期归还）同样视为已归还
func (i *Issue) CheckReturnable(strict bool) error {
	if i.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	if strict && i.Status == StatusOverdue {
		return ErrAlreadyReturned
	}
	return nil
}

// MarkReturned 记录归还
// 有罚款时状态为Overdue，否则为Returned
func (i *Issue) MarkReturned(at time.Time, fine int64) {
	i.ReturnDate = &at
	i.Fine = fine
	if fine > 0 {
		i.Status = StatusOverdue
	} else {
		i.Status = StatusReturned
	}
	i.UpdatedAt = at
}

// PayFine 缴纳罚款
func (i *Issue) PayFine(at time.Time) error {
	if i.Fine <= 0 {
		return ErrNoFineToPay
	}
	i.FinePaid = true
	i.UpdatedAt = at
	return nil
}

// OutstandingFine 未缴罚款
func (i *Issue) OutstandingFine() int64 {
	if i.FinePaid || i.Fine <= 0 {
		return 0
	}
	return i.Fine
}

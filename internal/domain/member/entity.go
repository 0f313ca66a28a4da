package member

import (
	"fmt"
	"time"
)

// MembershipType 会员等级
type MembershipType string

const (
	MembershipPremium  MembershipType = "Premium"
	MembershipStandard MembershipType = "Standard"
	MembershipBasic    MembershipType = "Basic"
)

// Valid 是否为合法会员等级
func (t MembershipType) Valid() bool {
	return t == MembershipPremium || t == MembershipStandard || t == MembershipBasic
}

// Status 会员状态
type Status string

const (
	StatusActive    Status = "Active"
	StatusSuspended Status = "Suspended"
	StatusCancelled Status = "Cancelled"
)

// Valid 是否为合法会员状态
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusSuspended || s == StatusCancelled
}

// DefaultMaxBooksAllowed 默认借阅上限
const DefaultMaxBooksAllowed = 5

// Member 会员实体（聚合根）
// 设计说明：
// 1. CurrentBooksIssued是冗余计数器，应等于该会员状态为Issued的借阅数，由借阅台账维护
// 2. 借阅上限只在借出时校验，手工调整MaxBooksAllowed后可能暂时超出
// 3. TotalFine是历史累计罚款，缴纳罚款不会减少它；当前欠款需从借阅记录汇总
type Member struct {
	ID                  uint
	MemberNumber        string
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Address             string
	City                string
	MembershipType      MembershipType
	MembershipStatus    Status
	MembershipStartDate time.Time
	MembershipEndDate   time.Time
	MaxBooksAllowed     int
	CurrentBooksIssued  int
	TotalFine           int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsActive 会员状态是否为Active
func (m *Member) IsActive() bool {
	return m.MembershipStatus == StatusActive
}

// HasReachedLimit 是否已达借阅上限
func (m *Member) HasReachedLimit() bool {
	return m.CurrentBooksIssued >= m.MaxBooksAllowed
}

// CheckBorrow 借阅资格校验
// 顺序：先校验状态，再校验上限
func (m *Member) CheckBorrow() error {
	if !m.IsActive() {
		return ErrMembershipNotActive
	}
	if m.HasReachedLimit() {
		return ErrBorrowLimitReached.WithMessage(
			fmt.Sprintf("Member has reached maximum book limit (%d)", m.MaxBooksAllowed))
	}
	return nil
}

// Borrow 借出计数+1
func (m *Member) Borrow() {
	m.CurrentBooksIssued++
	m.UpdatedAt = time.Now()
}

// ReturnBook 归还：借阅计数-1，罚款计入历史累计
// 计数已为0时不再递减，返回false
func (m *Member) ReturnBook(fine int64) bool {
	decremented := false
	if m.CurrentBooksIssued > 0 {
		m.CurrentBooksIssued--
		decremented = true
	}
	if fine > 0 {
		m.TotalFine += fine
	}
	m.UpdatedAt = time.Now()
	return decremented
}

// ChangeStatus 变更会员状态
func (m *Member) ChangeStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	m.MembershipStatus = status
	m.UpdatedAt = time.Now()
	return nil
}

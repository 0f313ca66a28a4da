package issue

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// IssueBookUseCase 借出用例
// 在一个事务内完成：锁定图书 → 锁定会员 → 创建借阅记录 → 可借副本-1 → 会员借阅数+1
type IssueBookUseCase struct {
	issueRepo  issue.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	txManager  TxManager
	notifier   *Notifier
	policy     Policy
	now        func() time.Time
}

// NewIssueBookUseCase 创建借出用例
func NewIssueBookUseCase(
	issueRepo issue.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	txManager TxManager,
	notifier *Notifier,
	policy Policy,
) *IssueBookUseCase {
	return &IssueBookUseCase{
		issueRepo:  issueRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
		notifier:   notifier,
		policy:     policy,
		now:        time.Now,
	}
}

// IssueBookRequest 借出请求DTO
type IssueBookRequest struct {
	BookID   uint
	MemberID uint
	DueDate  time.Time // 零值表示未提供
	Remarks  string
}

// Execute 执行借出
// 校验顺序（第一个失败即返回）:
//  1. 图书ID、会员ID、应还日期必填
//  2. 图书存在
//  3. 有可借副本
//  4. 会员存在
//  5. 会员状态为Active
//  6. 未达借阅上限
//
// 图书和会员都在事务内SELECT FOR UPDATE后再校验，
// 两个请求同时借最后一本时，后提交的一方会看到可借数为0
func (uc *IssueBookUseCase) Execute(ctx context.Context, req IssueBookRequest) (resp *IssueResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "IssueBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLedgerOperation("issue", start, err)
	}()

	now := clockNow(uc.now)

	dueDate := req.DueDate
	if dueDate.IsZero() && uc.policy.DefaultLoanDays > 0 {
		dueDate = now.AddDate(0, 0, uc.policy.DefaultLoanDays)
	}
	if req.BookID == 0 || req.MemberID == 0 || dueDate.IsZero() {
		return nil, issue.ErrIssueRequestInvalid
	}
	dueDate = dueDate.UTC().Truncate(time.Millisecond)

	var created *issue.Issue
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if !b.HasAvailableCopy() {
			return book.ErrNoCopiesAvailable
		}

		m, err := uc.memberRepo.LockByID(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if err := m.CheckBorrow(); err != nil {
			return err
		}

		i := issue.NewIssue(issue.GenerateIssueNumber(now), b.ID, m.ID, now, dueDate, strings.TrimSpace(req.Remarks))
		if err := uc.issueRepo.Create(txCtx, i); err != nil {
			return err
		}

		if err := b.Lend(); err != nil {
			return err
		}
		if err := uc.bookRepo.UpdateAvailability(txCtx, b); err != nil {
			return err
		}

		m.Borrow()
		if err := uc.memberRepo.UpdateCounters(txCtx, m); err != nil {
			return err
		}

		created = i
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "book issued",
		"issue_id", created.ID,
		"issue_number", created.IssueNumber,
		"book_id", created.BookID,
		"member_id", created.MemberID,
		"due_date", created.DueDate,
	)
	uc.notifier.Notify(ctx, EventBookIssued, created, now)

	result := toIssueResponse(created)
	return &result, nil
}

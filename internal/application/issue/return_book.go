package issue

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// ReturnBookUseCase 归还用例
type ReturnBookUseCase struct {
	issueRepo  issue.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	txManager  TxManager
	notifier   *Notifier
	policy     Policy
	now        func() time.Time
}

// NewReturnBookUseCase 创建归还用例
func NewReturnBookUseCase(
	issueRepo issue.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	txManager TxManager,
	notifier *Notifier,
	policy Policy,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		issueRepo:  issueRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
		notifier:   notifier,
		policy:     policy,
		now:        time.Now,
	}
}

// Execute 执行归还
// 加锁顺序：借阅记录 → 图书 → 会员
//
// 图书或会员已被删除时跳过对应的计数器更新，只记录警告；
// 再次归还Overdue记录时，可借数不超过总数、借阅数不低于0
func (uc *ReturnBookUseCase) Execute(ctx context.Context, issueID uint) (resp *ReturnBookResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "ReturnBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLedgerOperation("return", start, err)
	}()

	if issueID == 0 {
		return nil, issue.ErrIssueIDRequired
	}
	now := clockNow(uc.now)

	var returned *issue.Issue
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		i, err := uc.issueRepo.LockByID(txCtx, issueID)
		if err != nil {
			return err
		}
		if err := i.CheckReturnable(uc.policy.StrictReturnGuard); err != nil {
			return err
		}

		fine := uc.policy.Fine.ComputeFine(i.DueDate, now)
		i.MarkReturned(now, fine)
		if err := uc.issueRepo.Update(txCtx, i); err != nil {
			return err
		}

		if err := uc.restockBook(txCtx, i); err != nil {
			return err
		}
		if err := uc.settleMember(txCtx, i, fine); err != nil {
			return err
		}

		returned = i
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AddFineAssessed(returned.Fine)
	logger.FromContext(ctx).InfoContext(ctx, "book returned",
		"issue_id", returned.ID,
		"book_id", returned.BookID,
		"member_id", returned.MemberID,
		"status", returned.Status,
		"fine", returned.Fine,
	)
	uc.notifier.Notify(ctx, EventBookReturned, returned, now)

	return &ReturnBookResponse{
		Issue:    toIssueResponse(returned),
		Fine:     returned.Fine,
		FinePaid: false,
	}, nil
}

// restockBook 可借副本+1
func (uc *ReturnBookUseCase) restockBook(ctx context.Context, i *issue.Issue) error {
	b, err := uc.bookRepo.LockByID(ctx, i.BookID)
	if errors.Is(err, book.ErrBookNotFound) {
		logger.FromContext(ctx).WarnContext(ctx, "returned issue references missing book", "issue_id", i.ID, "book_id", i.BookID)
		return nil
	}
	if err != nil {
		return err
	}

	if !b.Restock() {
		logger.FromContext(ctx).WarnContext(ctx, "book already fully available, copies not incremented",
			"issue_id", i.ID,
			"book_id", b.ID,
			"total_copies", b.TotalCopies,
		)
		return nil
	}
	return uc.bookRepo.UpdateAvailability(ctx, b)
}

// settleMember 借阅数-1，罚款计入累计
func (uc *ReturnBookUseCase) settleMember(ctx context.Context, i *issue.Issue, fine int64) error {
	m, err := uc.memberRepo.LockByID(ctx, i.MemberID)
	if errors.Is(err, member.ErrMemberNotFound) {
		logger.FromContext(ctx).WarnContext(ctx, "returned issue references missing member", "issue_id", i.ID, "member_id", i.MemberID)
		return nil
	}
	if err != nil {
		return err
	}

	if !m.ReturnBook(fine) {
		logger.FromContext(ctx).WarnContext(ctx, "member has no books issued, counter not decremented",
			"issue_id", i.ID,
			"member_id", m.ID,
		)
	}
	return uc.memberRepo.UpdateCounters(ctx, m)
}

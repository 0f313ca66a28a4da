package issue

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// PayFineUseCase 缴纳罚款用例
// 只修改借阅记录的FinePaid，会员的TotalFine是历史累计，不随缴费减少
type PayFineUseCase struct {
	issueRepo issue.Repository
	txManager TxManager
	notifier  *Notifier
	now       func() time.Time
}

// NewPayFineUseCase 创建缴费用例
func NewPayFineUseCase(issueRepo issue.Repository, txManager TxManager, notifier *Notifier) *PayFineUseCase {
	return &PayFineUseCase{
		issueRepo: issueRepo,
		txManager: txManager,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Execute 执行缴费
// 已缴过的记录再次缴费直接返回当前状态，不重复写库和发事件
func (uc *PayFineUseCase) Execute(ctx context.Context, issueID uint) (resp *IssueResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "PayFine")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLedgerOperation("pay_fine", start, err)
	}()

	if issueID == 0 {
		return nil, issue.ErrIssueIDRequired
	}
	now := clockNow(uc.now)

	var (
		paid        *issue.Issue
		alreadyPaid bool
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		i, err := uc.issueRepo.LockByID(txCtx, issueID)
		if err != nil {
			return err
		}

		alreadyPaid = i.FinePaid
		if err := i.PayFine(now); err != nil {
			return err
		}
		paid = i
		if alreadyPaid {
			return nil
		}
		return uc.issueRepo.Update(txCtx, i)
	})
	if err != nil {
		return nil, err
	}

	if !alreadyPaid {
		metrics.AddFinePaid(paid.Fine)
		logger.FromContext(ctx).InfoContext(ctx, "fine paid",
			"issue_id", paid.ID,
			"member_id", paid.MemberID,
			"fine", paid.Fine,
		)
		uc.notifier.Notify(ctx, EventFinePaid, paid, now)
	}

	result := toIssueResponse(paid)
	return &result, nil
}

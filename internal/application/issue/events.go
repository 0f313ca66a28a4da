package issue

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

// 借阅事件的routing key
const (
	EventBookIssued   = "book.issued"
	EventBookReturned = "book.returned"
	EventFinePaid     = "fine.paid"
)

// Event 借阅事件消息体
type Event struct {
	Type        string    `json:"type"`
	IssueID     uint      `json:"issueId"`
	IssueNumber string    `json:"issueNumber"`
	BookID      uint      `json:"bookId"`
	MemberID    uint      `json:"memberId"`
	Status      string    `json:"status"`
	Fine        int64     `json:"fine"`
	FinePaid    bool      `json:"finePaid"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Notifier 事务提交后发布借阅事件
// 发布失败只记录日志，不影响已提交的台账操作
type Notifier struct {
	publisher mq.MessagePublisher
	timeout   time.Duration
}

// NewNotifier 创建事件通知器，publisher为nil时不发布
func NewNotifier(publisher mq.MessagePublisher, timeout time.Duration) *Notifier {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Notifier{publisher: publisher, timeout: timeout}
}

// Notify 发布一条借阅事件
// 请求结束后仍然完成发布，只受自身超时约束
func (n *Notifier) Notify(ctx context.Context, eventType string, i *issue.Issue, at time.Time) {
	if n == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	event := Event{
		Type:        eventType,
		IssueID:     i.ID,
		IssueNumber: i.IssueNumber,
		BookID:      i.BookID,
		MemberID:    i.MemberID,
		Status:      string(i.Status),
		Fine:        i.Fine,
		FinePaid:    i.FinePaid,
		OccurredAt:  at,
	}
	if err := n.publisher.Publish(pubCtx, eventType, event); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "publish circulation event failed",
			"event", eventType,
			"issue_id", i.ID,
			"error", err,
		)
	}
}

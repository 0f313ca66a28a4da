package issue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

const day = 24 * time.Hour

// ledger 测试用的一套借阅台账
type ledger struct {
	store     *memStore
	books     memBookRepo
	members   memMemberRepo
	issues    memIssueRepo
	clock     *fakeClock
	publisher *recordingPublisher

	issueUC  *IssueBookUseCase
	returnUC *ReturnBookUseCase
	payUC    *PayFineUseCase
	queryUC  *QueryIssuesUseCase
}

func newLedger(t testing.TB, policy Policy) *ledger {
	t.Helper()

	s := newMemStore()
	l := &ledger{
		store:     s,
		books:     memBookRepo{s},
		members:   memMemberRepo{s},
		issues:    memIssueRepo{s},
		clock:     &fakeClock{now: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)},
		publisher: &recordingPublisher{},
	}
	if policy.Fine.RatePerDay == 0 {
		policy.Fine = issue.NewFinePolicy(0)
	}
	notifier := NewNotifier(l.publisher, time.Second)

	l.issueUC = NewIssueBookUseCase(l.issues, l.books, l.members, s, notifier, policy)
	l.returnUC = NewReturnBookUseCase(l.issues, l.books, l.members, s, notifier, policy)
	l.payUC = NewPayFineUseCase(l.issues, s, notifier)
	l.queryUC = NewQueryIssuesUseCase(l.issues, l.books, l.members)
	l.issueUC.now = l.clock.Now
	l.returnUC.now = l.clock.Now
	l.payUC.now = l.clock.Now
	l.queryUC.now = l.clock.Now
	return l
}

func (l *ledger) addBook(t testing.TB, title string, copies int) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, "Author", "", book.CategoryFiction, book.ItemTypeBook, copies, 0, "")
	require.NoError(t, err)
	require.NoError(t, l.books.Create(context.Background(), b))
	return b
}

func (l *ledger) addMember(t testing.TB, email string, maxBooks int) *member.Member {
	t.Helper()
	now := l.clock.Now()
	m := &member.Member{
		MemberNumber:        member.GenerateMemberNumber() + email,
		FirstName:           "Ada",
		LastName:            "Lovelace",
		Email:               email,
		Phone:               "5550001111",
		Address:             "12 St James's Square",
		City:                "London",
		MembershipType:      member.MembershipStandard,
		MembershipStatus:    member.StatusActive,
		MembershipStartDate: now,
		MembershipEndDate:   now.AddDate(1, 0, 0),
		MaxBooksAllowed:     maxBooks,
	}
	require.NoError(t, l.members.Create(context.Background(), m))
	return m
}

func (l *ledger) issue(t testing.TB, bookID, memberID uint, due time.Time) *IssueResponse {
	t.Helper()
	resp, err := l.issueUC.Execute(context.Background(), IssueBookRequest{BookID: bookID, MemberID: memberID, DueDate: due})
	require.NoError(t, err)
	return resp
}

// =========================================
// 借出
// =========================================

func TestIssueBook_Success(t *testing.T) {
	l := newLedger(t, Policy{})
	b := l.addBook(t, "Dune", 3)
	m := l.addMember(t, "ada@example.com", 5)
	due := l.clock.Now().Add(14 * day)

	resp, err := l.issueUC.Execute(context.Background(), IssueBookRequest{
		BookID:   b.ID,
		MemberID: m.ID,
		DueDate:  due,
		Remarks:  "  first loan ",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Regexp(t, `^ISS-\d{16}$`, resp.IssueNumber)
	assert.Equal(t, string(issue.StatusIssued), resp.Status)
	assert.Equal(t, l.clock.Now(), resp.IssueDate)
	assert.Equal(t, due, resp.DueDate)
	assert.Nil(t, resp.ReturnDate)
	assert.Zero(t, resp.Fine)
	assert.False(t, resp.FinePaid)
	assert.Equal(t, "first loan", resp.Remarks)

	assert.Equal(t, 2, l.store.book(b.ID).AvailableCopies)
	assert.Equal(t, 1, l.store.member(m.ID).CurrentBooksIssued)
	assert.Equal(t, []string{EventBookIssued}, l.publisher.routingKeys())
}

func TestIssueBook_Preconditions(t *testing.T) {
	l := newLedger(t, Policy{})
	ctx := context.Background()
	due := l.clock.Now().Add(7 * day)

	available := l.addBook(t, "Available", 2)
	exhausted := l.addBook(t, "Exhausted", 1)
	active := l.addMember(t, "active@example.com", 5)
	holder := l.addMember(t, "holder@example.com", 5)
	l.issue(t, exhausted.ID, holder.ID, due)

	suspended := l.addMember(t, "suspended@example.com", 5)
	_, err := member.NewService(l.members).ChangeStatus(ctx, suspended.ID, member.StatusSuspended)
	require.NoError(t, err)

	full := l.addMember(t, "full@example.com", 1)
	l.issue(t, available.ID, full.ID, due)

	cases := []struct {
		name    string
		req     IssueBookRequest
		wantErr error
		wantMsg string
	}{
		{"缺少图书ID", IssueBookRequest{MemberID: active.ID, DueDate: due}, issue.ErrIssueRequestInvalid, "Book ID, Member ID, and Due Date are required"},
		{"缺少会员ID", IssueBookRequest{BookID: available.ID, DueDate: due}, issue.ErrIssueRequestInvalid, ""},
		{"缺少应还日期", IssueBookRequest{BookID: available.ID, MemberID: active.ID}, issue.ErrIssueRequestInvalid, ""},
		{"图书不存在", IssueBookRequest{BookID: 999, MemberID: active.ID, DueDate: due}, book.ErrBookNotFound, "Book not found"},
		{"无可借副本优先于会员校验", IssueBookRequest{BookID: exhausted.ID, MemberID: 999, DueDate: due}, book.ErrNoCopiesAvailable, "No copies available for this book"},
		{"会员不存在", IssueBookRequest{BookID: available.ID, MemberID: 999, DueDate: due}, member.ErrMemberNotFound, "Member not found"},
		{"会员状态非Active", IssueBookRequest{BookID: available.ID, MemberID: suspended.ID, DueDate: due}, member.ErrMembershipNotActive, "Member membership is not active"},
		{"达到借阅上限", IssueBookRequest{BookID: available.ID, MemberID: full.ID, DueDate: due}, nil, "Member has reached maximum book limit (1)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := l.store.issueCount()
			availableBefore := l.store.book(available.ID).AvailableCopies

			_, err := l.issueUC.Execute(ctx, tc.req)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, apperrors.GetAppError(err).Message)
			}

			assert.Equal(t, before, l.store.issueCount(), "失败时不创建借阅记录")
			assert.Equal(t, availableBefore, l.store.book(available.ID).AvailableCopies)
		})
	}

	t.Run("达到上限时计数不变", func(t *testing.T) {
		_, err := l.issueUC.Execute(ctx, IssueBookRequest{BookID: available.ID, MemberID: full.ID, DueDate: due})
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeBorrowLimitReached, appErr.Code)
		assert.Equal(t, 1, l.store.member(full.ID).CurrentBooksIssued)
	})
}

func TestIssueBook_DefaultLoanDays(t *testing.T) {
	l := newLedger(t, Policy{DefaultLoanDays: 21})
	b := l.addBook(t, "Emma", 1)
	m := l.addMember(t, "emma@example.com", 5)

	resp, err := l.issueUC.Execute(context.Background(), IssueBookRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, l.clock.Now().AddDate(0, 0, 21), resp.DueDate)
}

func TestIssueBook_RollbackOnFailure(t *testing.T) {
	l := newLedger(t, Policy{})
	b := l.addBook(t, "Ulysses", 1)
	m := l.addMember(t, "joyce@example.com", 5)
	l.store.failCounters = errors.New("connection reset")

	_, err := l.issueUC.Execute(context.Background(), IssueBookRequest{BookID: b.ID, MemberID: m.ID, DueDate: l.clock.Now().Add(day)})
	require.Error(t, err)

	assert.Zero(t, l.store.issueCount(), "借阅记录随事务回滚")
	assert.Equal(t, 1, l.store.book(b.ID).AvailableCopies, "可借数随事务回滚")
	assert.Zero(t, l.store.member(m.ID).CurrentBooksIssued)
	assert.Empty(t, l.publisher.routingKeys(), "回滚后不发布事件")
}

// TestIssueBook_ConcurrentLastCopy 并发借最后一本，只有一个成功
func TestIssueBook_ConcurrentLastCopy(t *testing.T) {
	l := newLedger(t, Policy{})
	b := l.addBook(t, "Last Copy", 1)

	const n = 10
	members := make([]*member.Member, n)
	for i := range members {
		members[i] = l.addMember(t, "m"+string(rune('a'+i))+"@example.com", 5)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		noCopies  int
	)
	for _, m := range members {
		wg.Add(1)
		go func(memberID uint) {
			defer wg.Done()
			_, err := l.issueUC.Execute(context.Background(), IssueBookRequest{
				BookID:   b.ID,
				MemberID: memberID,
				DueDate:  l.clock.Now().Add(day),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, book.ErrNoCopiesAvailable):
				noCopies++
			}
		}(m.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, noCopies)
	assert.Zero(t, l.store.book(b.ID).AvailableCopies)
	assert.Equal(t, 1, l.store.issueCount())
}

// =========================================
// 归还
// =========================================

func TestReturnBook_OnTime(t *testing.T) {
	l := newLedger(t, Policy{})
	b := l.addBook(t, "B1", 1)
	m1 := l.addMember(t, "m1@example.com", 5)
	m2 := l.addMember(t, "m2@example.com", 5)

	issued := l.issue(t, b.ID, m1.ID, l.clock.Now().Add(5*day))
	assert.Zero(t, l.store.book(b.ID).AvailableCopies)

	_, err := l.issueUC.Execute(context.Background(), IssueBookRequest{BookID: b.ID, MemberID: m2.ID, DueDate: l.clock.Now().Add(5 * day)})
	require.Error(t, err)
	assert.Equal(t, "No copies available for this book", apperrors.GetAppError(err).Message)

	l.clock.Advance(2 * day)
	resp, err := l.returnUC.Execute(context.Background(), issued.ID)
	require.NoError(t, err)

	assert.Zero(t, resp.Fine)
	assert.False(t, resp.FinePaid)
	assert.Equal(t, string(issue.StatusReturned), resp.Issue.Status)
	require.NotNil(t, resp.Issue.ReturnDate)
	assert.Equal(t, l.clock.Now(), *resp.Issue.ReturnDate)

	assert.Equal(t, 1, l.store.book(b.ID).AvailableCopies)
	assert.Zero(t, l.store.member(m1.ID).CurrentBooksIssued)
	assert.Zero(t, l.store.member(m1.ID).TotalFine)
}

func TestReturnBook_Overdue(t *testing.T) {
	l := newLedger(t, Policy{})
	b := l.addBook(t, "B1", 2)
	m := l.addMember(t, "late@example.com", 5)

	issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(-day))
	l.clock.Advance(2*day + time.Hour)

	resp, err := l.returnUC.Execute(context.Background(), issued.ID)
	require.NoError(t, err)

	// 逾期3天1小时，按4天计
	assert.Equal(t, int64(40), resp.Fine)
	assert.Equal(t, int64(40), resp.Issue.Fine)
	assert.Equal(t, string(issue.StatusOverdue), resp.Issue.Status)
	assert.False(t, resp.FinePaid)

	assert.Equal(t, int64(40), l.store.member(m.ID).TotalFine)
	assert.Zero(t, l.store.member(m.ID).CurrentBooksIssued)
	assert.Equal(t, 2, l.store.book(b.ID).AvailableCopies)
	assert.Equal(t, []string{EventBookIssued, EventBookReturned}, l.publisher.routingKeys())
}

func TestReturnBook_Validation(t *testing.T) {
	l := newLedger(t, Policy{})

	_, err := l.returnUC.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, issue.ErrIssueIDRequired)

	_, err = l.returnUC.Execute(context.Background(), 404)
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)
	assert.Equal(t, 404, apperrors.GetAppError(err).HTTPStatus())
}

// TestReturnBook_Twice 重复归还：Returned总是拦截，Overdue只在严格模式下拦截
func TestReturnBook_Twice(t *testing.T) {
	t.Run("已归还的记录不能再次归还", func(t *testing.T) {
		l := newLedger(t, Policy{})
		b := l.addBook(t, "B", 1)
		m := l.addMember(t, "twice@example.com", 5)
		issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(day))

		_, err := l.returnUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)

		_, err = l.returnUC.Execute(context.Background(), issued.ID)
		assert.ErrorIs(t, err, issue.ErrAlreadyReturned)
		assert.Equal(t, "Book has already been returned", apperrors.GetAppError(err).Message)
		assert.Equal(t, 1, l.store.book(b.ID).AvailableCopies)
		assert.Zero(t, l.store.member(m.ID).CurrentBooksIssued)
	})

	t.Run("逾期归还的记录默认可再次归还,计数器不越界", func(t *testing.T) {
		l := newLedger(t, Policy{})
		b := l.addBook(t, "B", 1)
		m := l.addMember(t, "overdue@example.com", 5)
		issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(-day))

		first, err := l.returnUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)
		require.Equal(t, string(issue.StatusOverdue), first.Issue.Status)
		assert.Equal(t, int64(10), first.Fine)

		l.clock.Advance(day)
		second, err := l.returnUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), second.Fine, "重新按当前时间计算罚款")

		assert.Equal(t, 1, l.store.book(b.ID).AvailableCopies, "可借数不超过总数")
		assert.Zero(t, l.store.member(m.ID).CurrentBooksIssued, "借阅数不低于0")
		assert.Equal(t, int64(30), l.store.member(m.ID).TotalFine, "两次罚款都计入累计")
	})

	t.Run("严格模式下逾期归还的记录不能再次归还", func(t *testing.T) {
		l := newLedger(t, Policy{StrictReturnGuard: true})
		b := l.addBook(t, "B", 1)
		m := l.addMember(t, "strict@example.com", 5)
		issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(-day))

		_, err := l.returnUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)

		_, err = l.returnUC.Execute(context.Background(), issued.ID)
		assert.ErrorIs(t, err, issue.ErrAlreadyReturned)
		assert.Equal(t, int64(10), l.store.member(m.ID).TotalFine)
	})
}

func TestReturnBook_MissingReferences(t *testing.T) {
	l := newLedger(t, Policy{})
	ctx := context.Background()
	b := l.addBook(t, "Gone", 1)
	m := l.addMember(t, "stays@example.com", 5)
	issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(day))

	require.NoError(t, l.books.Delete(ctx, b.ID))

	resp, err := l.returnUC.Execute(ctx, issued.ID)
	require.NoError(t, err, "图书已删除不影响归还")
	assert.Equal(t, string(issue.StatusReturned), resp.Issue.Status)
	assert.Zero(t, l.store.member(m.ID).CurrentBooksIssued)

	b2 := l.addBook(t, "Orphan", 1)
	m2 := l.addMember(t, "leaves@example.com", 5)
	issued2 := l.issue(t, b2.ID, m2.ID, l.clock.Now().Add(day))
	l.store.mu.Lock()
	delete(l.store.members, m2.ID)
	l.store.mu.Unlock()

	_, err = l.returnUC.Execute(ctx, issued2.ID)
	require.NoError(t, err, "会员已删除不影响归还")
	assert.Equal(t, 1, l.store.book(b2.ID).AvailableCopies)
}

// =========================================
// 缴纳罚款
// =========================================

func TestPayFine(t *testing.T) {
	t.Run("没有罚款", func(t *testing.T) {
		l := newLedger(t, Policy{})
		b := l.addBook(t, "B", 1)
		m := l.addMember(t, "nofine@example.com", 5)
		issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(day))
		_, err := l.returnUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)

		_, err = l.payUC.Execute(context.Background(), issued.ID)
		assert.ErrorIs(t, err, issue.ErrNoFineToPay)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
	})

	t.Run("缴纳50的罚款", func(t *testing.T) {
		l := newLedger(t, Policy{})
		b := l.addBook(t, "B", 1)
		m := l.addMember(t, "fine@example.com", 5)
		issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(-5*day))
		returned, err := l.returnUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)
		require.Equal(t, int64(50), returned.Fine)
		totalFine := l.store.member(m.ID).TotalFine

		paid, err := l.payUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)
		assert.True(t, paid.FinePaid)
		assert.Equal(t, int64(50), paid.Fine)
		assert.Equal(t, totalFine, l.store.member(m.ID).TotalFine, "缴费不减少累计罚款")

		again, err := l.payUC.Execute(context.Background(), issued.ID)
		require.NoError(t, err)
		assert.True(t, again.FinePaid)
		assert.Equal(t, []string{EventBookIssued, EventBookReturned, EventFinePaid}, l.publisher.routingKeys(), "重复缴费不重复发事件")
	})

	t.Run("参数校验", func(t *testing.T) {
		l := newLedger(t, Policy{})
		_, err := l.payUC.Execute(context.Background(), 0)
		assert.ErrorIs(t, err, issue.ErrIssueIDRequired)
		_, err = l.payUC.Execute(context.Background(), 42)
		assert.ErrorIs(t, err, issue.ErrIssueNotFound)
	})
}

// =========================================
// 查询
// =========================================

func TestQueryIssues(t *testing.T) {
	l := newLedger(t, Policy{})
	ctx := context.Background()
	b1 := l.addBook(t, "First", 2)
	b2 := l.addBook(t, "Second", 2)
	m := l.addMember(t, "reader@example.com", 5)
	other := l.addMember(t, "other@example.com", 5)

	oldest := l.issue(t, b1.ID, m.ID, l.clock.Now().Add(-day))
	l.clock.Advance(time.Hour)
	middle := l.issue(t, b2.ID, other.ID, l.clock.Now().Add(10*day))
	l.clock.Advance(time.Hour)
	newest := l.issue(t, b1.ID, m.ID, l.clock.Now().Add(10*day))
	_, err := l.returnUC.Execute(ctx, middle.ID)
	require.NoError(t, err)

	t.Run("全部记录按借出日期倒序", func(t *testing.T) {
		all, err := l.queryUC.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []uint{newest.ID, middle.ID, oldest.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})
		require.NotNil(t, all[0].Book)
		assert.Equal(t, "First", all[0].Book.Title)
		require.NotNil(t, all[0].Member)
		assert.Equal(t, "reader@example.com", all[0].Member.Email)
	})

	t.Run("未归还记录", func(t *testing.T) {
		active, err := l.queryUC.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		for _, d := range active {
			assert.Equal(t, string(issue.StatusIssued), d.Status)
		}
	})

	t.Run("逾期未还记录", func(t *testing.T) {
		overdue, err := l.queryUC.ListOverdue(ctx)
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, oldest.ID, overdue[0].ID)
	})

	t.Run("会员借阅历史", func(t *testing.T) {
		history, err := l.queryUC.ListByMember(ctx, m.ID)
		require.NoError(t, err)
		assert.Len(t, history, 2)

		_, err = l.queryUC.ListByMember(ctx, 999)
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})

	t.Run("单条记录展开引用", func(t *testing.T) {
		detail, err := l.queryUC.GetByID(ctx, middle.ID)
		require.NoError(t, err)
		assert.Equal(t, "Second", detail.Book.Title)
		assert.Equal(t, other.ID, detail.Member.ID)

		_, err = l.queryUC.GetByID(ctx, 999)
		assert.ErrorIs(t, err, issue.ErrIssueNotFound)
	})

	t.Run("引用已删除时为nil", func(t *testing.T) {
		require.NoError(t, l.books.Delete(ctx, b2.ID))
		detail, err := l.queryUC.GetByID(ctx, middle.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.Book)
		assert.NotNil(t, detail.Member)
	})

	t.Run("空列表", func(t *testing.T) {
		empty := newLedger(t, Policy{})
		list, err := empty.queryUC.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

// =========================================
// 事件
// =========================================

func TestNotifier_PublishFailureDoesNotFailLedger(t *testing.T) {
	l := newLedger(t, Policy{})
	l.publisher.err = errors.New("broker unavailable")
	b := l.addBook(t, "B", 1)
	m := l.addMember(t, "events@example.com", 5)

	resp, err := l.issueUC.Execute(context.Background(), IssueBookRequest{BookID: b.ID, MemberID: m.ID, DueDate: l.clock.Now().Add(day)})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Zero(t, l.store.book(b.ID).AvailableCopies)
}

func TestNotifier_EventPayload(t *testing.T) {
	l := newLedger(t, Policy{})
	b := l.addBook(t, "B", 1)
	m := l.addMember(t, "payload@example.com", 5)
	issued := l.issue(t, b.ID, m.ID, l.clock.Now().Add(-day))

	_, err := l.returnUC.Execute(context.Background(), issued.ID)
	require.NoError(t, err)

	require.Len(t, l.publisher.events, 2)
	returned := l.publisher.events[1]
	assert.Equal(t, EventBookReturned, returned.Type)
	assert.Equal(t, issued.ID, returned.IssueID)
	assert.Equal(t, b.ID, returned.BookID)
	assert.Equal(t, m.ID, returned.MemberID)
	assert.Equal(t, string(issue.StatusOverdue), returned.Status)
	assert.Equal(t, int64(10), returned.Fine)
}

// =========================================
// 性质测试
// =========================================

// TestLedger_CounterInvariants 任意借出/归还序列之后：
//  1. 每本书 AvailableCopies == TotalCopies - 该书未归还记录数
//  2. 每个会员 CurrentBooksIssued == 该会员未归还记录数
//  3. 每个会员 TotalFine == 该会员所有记录罚款之和
func TestLedger_CounterInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		l := newLedger(t, Policy{StrictReturnGuard: true})
		ctx := context.Background()

		books := make([]*book.Book, rapid.IntRange(1, 3).Draw(rt, "books"))
		for i := range books {
			books[i] = l.addBook(t, "Book", rapid.IntRange(1, 3).Draw(rt, "copies"))
		}
		members := make([]*member.Member, rapid.IntRange(1, 3).Draw(rt, "members"))
		for i := range members {
			members[i] = l.addMember(t, "p"+string(rune('a'+i))+"@example.com", rapid.IntRange(1, 3).Draw(rt, "max"))
		}

		var issued []uint
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			l.clock.Advance(time.Duration(rapid.IntRange(0, 72).Draw(rt, "hours")) * time.Hour)

			if len(issued) > 0 && rapid.Bool().Draw(rt, "return") {
				id := issued[rapid.IntRange(0, len(issued)-1).Draw(rt, "issue")]
				_, _ = l.returnUC.Execute(ctx, id)
				continue
			}

			b := books[rapid.IntRange(0, len(books)-1).Draw(rt, "book")]
			m := members[rapid.IntRange(0, len(members)-1).Draw(rt, "member")]
			due := l.clock.Now().Add(time.Duration(rapid.IntRange(-48, 240).Draw(rt, "dueHours")) * time.Hour)
			resp, err := l.issueUC.Execute(ctx, IssueBookRequest{BookID: b.ID, MemberID: m.ID, DueDate: due})
			if err == nil {
				issued = append(issued, resp.ID)
			}
		}

		all, err := l.issues.List(ctx, issue.ListParams{})
		if err != nil {
			rt.Fatalf("list issues: %v", err)
		}
		activeByBook := map[uint]int{}
		activeByMember := map[uint]int{}
		finesByMember := map[uint]int64{}
		for _, i := range all {
			if i.IsActive() {
				activeByBook[i.BookID]++
				activeByMember[i.MemberID]++
			}
			finesByMember[i.MemberID] += i.Fine
		}

		for _, b := range books {
			stored := l.store.book(b.ID)
			if stored.AvailableCopies != stored.TotalCopies-activeByBook[b.ID] {
				rt.Fatalf("book %d: available %d, total %d, active %d", b.ID, stored.AvailableCopies, stored.TotalCopies, activeByBook[b.ID])
			}
		}
		for _, m := range members {
			stored := l.store.member(m.ID)
			if stored.CurrentBooksIssued != activeByMember[m.ID] {
				rt.Fatalf("member %d: current %d, active %d", m.ID, stored.CurrentBooksIssued, activeByMember[m.ID])
			}
			if stored.CurrentBooksIssued > stored.MaxBooksAllowed {
				rt.Fatalf("member %d exceeds limit", m.ID)
			}
			if stored.TotalFine != finesByMember[m.ID] {
				rt.Fatalf("member %d: total fine %d, fines %d", m.ID, stored.TotalFine, finesByMember[m.ID])
			}
		}
	})
}

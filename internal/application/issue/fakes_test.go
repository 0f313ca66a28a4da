package issue

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
)

// memStore 内存版记录存储
// txMu串行化事务（相当于行锁），出错时恢复事务开始前的快照
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	books   map[uint]book.Book
	members map[uint]member.Member
	issues  map[uint]issue.Issue
	seq     uint

	// failCounters 非nil时UpdateCounters返回该错误，用于验证回滚
	failCounters error
}

func newMemStore() *memStore {
	return &memStore{
		books:   make(map[uint]book.Book),
		members: make(map[uint]member.Member),
		issues:  make(map[uint]issue.Issue),
	}
}

func (s *memStore) nextID() uint {
	s.seq++
	return s.seq
}

type snapshot struct {
	books   map[uint]book.Book
	members map[uint]member.Member
	issues  map[uint]issue.Issue
	seq     uint
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		books:   make(map[uint]book.Book, len(s.books)),
		members: make(map[uint]member.Member, len(s.members)),
		issues:  make(map[uint]issue.Issue, len(s.issues)),
		seq:     s.seq,
	}
	for k, v := range s.books {
		snap.books[k] = v
	}
	for k, v := range s.members {
		snap.members[k] = v
	}
	for k, v := range s.issues {
		snap.issues[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books, s.members, s.issues, s.seq = snap.books, snap.members, snap.issues, snap.seq
}

// Transaction 实现TxManager
func (s *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) book(id uint) book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *memStore) member(id uint) member.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[id]
}

func (s *memStore) issueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issues)
}

// =========================================
// book.Repository
// =========================================

type memBookRepo struct{ s *memStore }

func (r memBookRepo) Create(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.ISBN != "" {
		for _, existing := range r.s.books {
			if existing.ISBN == b.ISBN {
				return book.ErrISBNDuplicate
			}
		}
	}
	b.ID = r.s.nextID()
	r.s.books[b.ID] = *b
	return nil
}

func (r memBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r memBookRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]*book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := r.s.books[id]; ok {
			result[id] = &b
		}
	}
	return result, nil
}

func (r memBookRepo) Update(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	r.s.books[b.ID] = *b
	return nil
}

func (r memBookRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.s.books, id)
	return nil
}

func (r memBookRepo) List(_ context.Context, params book.ListParams) ([]*book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*book.Book
	keyword := strings.ToLower(params.Keyword)
	for _, b := range r.s.books {
		b := b
		if keyword != "" && !strings.Contains(strings.ToLower(b.Title+" "+b.Author+" "+b.ISBN), keyword) {
			continue
		}
		if params.Category != "" && b.Category != params.Category {
			continue
		}
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r memBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r memBookRepo) UpdateAvailability(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.AvailableCopies < 0 || b.AvailableCopies > stored.TotalCopies {
		return errOutOfRange
	}
	stored.AvailableCopies = b.AvailableCopies
	r.s.books[b.ID] = stored
	return nil
}

// =========================================
// member.Repository
// =========================================

type memMemberRepo struct{ s *memStore }

func (r memMemberRepo) Create(_ context.Context, m *member.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.members {
		if existing.Email == m.Email {
			return member.ErrEmailDuplicate
		}
		if existing.MemberNumber == m.MemberNumber {
			return member.ErrMemberNumberDuplicate
		}
	}
	m.ID = r.s.nextID()
	r.s.members[m.ID] = *m
	return nil
}

func (r memMemberRepo) FindByID(_ context.Context, id uint) (*member.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return &m, nil
}

func (r memMemberRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]*member.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make(map[uint]*member.Member)
	for _, id := range ids {
		if m, ok := r.s.members[id]; ok {
			result[id] = &m
		}
	}
	return result, nil
}

func (r memMemberRepo) List(_ context.Context, params member.ListParams) ([]*member.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*member.Member
	for _, m := range r.s.members {
		m := m
		if params.Status != "" && m.MembershipStatus != params.Status {
			continue
		}
		result = append(result, &m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r memMemberRepo) UpdateStatus(_ context.Context, m *member.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.members[m.ID]
	if !ok {
		return member.ErrMemberNotFound
	}
	stored.MembershipStatus = m.MembershipStatus
	r.s.members[m.ID] = stored
	return nil
}

func (r memMemberRepo) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	return r.FindByID(ctx, id)
}

func (r memMemberRepo) UpdateCounters(_ context.Context, m *member.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCounters != nil {
		return r.s.failCounters
	}
	stored, ok := r.s.members[m.ID]
	if !ok {
		return member.ErrMemberNotFound
	}
	if m.CurrentBooksIssued < 0 || m.TotalFine < 0 {
		return errOutOfRange
	}
	stored.CurrentBooksIssued = m.CurrentBooksIssued
	stored.TotalFine = m.TotalFine
	r.s.members[m.ID] = stored
	return nil
}

// =========================================
// issue.Repository
// =========================================

type memIssueRepo struct{ s *memStore }

func (r memIssueRepo) Create(_ context.Context, i *issue.Issue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.issues {
		if existing.IssueNumber == i.IssueNumber {
			return issue.ErrIssueNumberDuplicate
		}
	}
	i.ID = r.s.nextID()
	r.s.issues[i.ID] = *i
	return nil
}

func (r memIssueRepo) FindByID(_ context.Context, id uint) (*issue.Issue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.issues[id]
	if !ok {
		return nil, issue.ErrIssueNotFound
	}
	return &i, nil
}

func (r memIssueRepo) LockByID(ctx context.Context, id uint) (*issue.Issue, error) {
	return r.FindByID(ctx, id)
}

func (r memIssueRepo) Update(_ context.Context, i *issue.Issue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.issues[i.ID]; !ok {
		return issue.ErrIssueNotFound
	}
	r.s.issues[i.ID] = *i
	return nil
}

func (r memIssueRepo) List(_ context.Context, params issue.ListParams) ([]*issue.Issue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*issue.Issue
	for _, i := range r.s.issues {
		i := i
		if params.Status != "" && i.Status != params.Status {
			continue
		}
		if params.MemberID != 0 && i.MemberID != params.MemberID {
			continue
		}
		if !params.DueBefore.IsZero() && !i.DueDate.Before(params.DueBefore) {
			continue
		}
		result = append(result, &i)
	}
	sort.Slice(result, func(a, b int) bool {
		if !result[a].IssueDate.Equal(result[b].IssueDate) {
			return result[a].IssueDate.After(result[b].IssueDate)
		}
		return result[a].ID > result[b].ID
	})
	return result, nil
}

func (r memIssueRepo) SumOutstandingFines(_ context.Context, memberID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, i := range r.s.issues {
		if i.MemberID == memberID {
			total += i.OutstandingFine()
		}
	}
	return total, nil
}

type outOfRangeError struct{}

func (outOfRangeError) Error() string { return "counter out of range" }

var errOutOfRange error = outOfRangeError{}

// =========================================
// 其他测试替身
// =========================================

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	if e, ok := message.(Event); ok {
		p.events = append(p.events, e)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

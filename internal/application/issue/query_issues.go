package issue

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
)

// QueryIssuesUseCase 借阅记录查询
// 所有结果都展开图书和会员信息，列表按借出日期倒序
type QueryIssuesUseCase struct {
	issueRepo  issue.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	now        func() time.Time
}

// NewQueryIssuesUseCase 创建查询用例
func NewQueryIssuesUseCase(issueRepo issue.Repository, bookRepo book.Repository, memberRepo member.Repository) *QueryIssuesUseCase {
	return &QueryIssuesUseCase{
		issueRepo:  issueRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// GetByID 查询单条借阅记录
func (uc *QueryIssuesUseCase) GetByID(ctx context.Context, id uint) (*IssueDetail, error) {
	if id == 0 {
		return nil, issue.ErrIssueIDRequired
	}
	i, err := uc.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := uc.expand(ctx, []*issue.Issue{i})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListAll 全部借阅记录
func (uc *QueryIssuesUseCase) ListAll(ctx context.Context) ([]IssueDetail, error) {
	return uc.list(ctx, issue.ListParams{})
}

// ListActive 未归还的借阅记录（status = Issued）
func (uc *QueryIssuesUseCase) ListActive(ctx context.Context) ([]IssueDetail, error) {
	return uc.list(ctx, issue.ListParams{Status: issue.StatusIssued})
}

// ListOverdue 未归还且已过应还日期的借阅记录
func (uc *QueryIssuesUseCase) ListOverdue(ctx context.Context) ([]IssueDetail, error) {
	return uc.list(ctx, issue.ListParams{
		Status:    issue.StatusIssued,
		DueBefore: clockNow(uc.now),
	})
}

// ListByMember 会员的借阅历史
func (uc *QueryIssuesUseCase) ListByMember(ctx context.Context, memberID uint) ([]IssueDetail, error) {
	if _, err := uc.memberRepo.FindByID(ctx, memberID); err != nil {
		return nil, err
	}
	return uc.list(ctx, issue.ListParams{MemberID: memberID})
}

func (uc *QueryIssuesUseCase) list(ctx context.Context, params issue.ListParams) ([]IssueDetail, error) {
	issues, err := uc.issueRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return uc.expand(ctx, issues)
}

// expand 批量加载引用的图书和会员，每类只查询一次
func (uc *QueryIssuesUseCase) expand(ctx context.Context, issues []*issue.Issue) ([]IssueDetail, error) {
	details := make([]IssueDetail, len(issues))
	if len(issues) == 0 {
		return details, nil
	}

	bookIDs := make([]uint, 0, len(issues))
	memberIDs := make([]uint, 0, len(issues))
	for _, i := range issues {
		bookIDs = append(bookIDs, i.BookID)
		memberIDs = append(memberIDs, i.MemberID)
	}

	books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	members, err := uc.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	for idx, i := range issues {
		details[idx] = IssueDetail{
			IssueResponse: toIssueResponse(i),
			Book:          toBookRef(books[i.BookID]),
			Member:        toMemberRef(members[i.MemberID]),
		}
	}
	return details, nil
}

package member

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/logger"
)

// MemberResponse 会员DTO
// TotalFine是历史累计罚款；OutstandingFine是未缴罚款合计，只在详情中返回
type MemberResponse struct {
	ID                  uint      `json:"id"`
	MemberNumber        string    `json:"memberNumber"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	MembershipType      string    `json:"membershipType"`
	MembershipStatus    string    `json:"membershipStatus"`
	MembershipStartDate time.Time `json:"membershipStartDate"`
	MembershipEndDate   time.Time `json:"membershipEndDate"`
	MaxBooksAllowed     int       `json:"maxBooksAllowed"`
	CurrentBooksIssued  int       `json:"currentBooksIssued"`
	TotalFine           int64     `json:"totalFine"`
	OutstandingFine     *int64    `json:"outstandingFine,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func toMemberResponse(m *member.Member) *MemberResponse {
	return &MemberResponse{
		ID:                  m.ID,
		MemberNumber:        m.MemberNumber,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		City:                m.City,
		MembershipType:      string(m.MembershipType),
		MembershipStatus:    string(m.MembershipStatus),
		MembershipStartDate: m.MembershipStartDate,
		MembershipEndDate:   m.MembershipEndDate,
		MaxBooksAllowed:     m.MaxBooksAllowed,
		CurrentBooksIssued:  m.CurrentBooksIssued,
		TotalFine:           m.TotalFine,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// RegisterMemberUseCase 办理会员
type RegisterMemberUseCase struct {
	memberService member.Service
}

// NewRegisterMemberUseCase 创建办理会员用例
func NewRegisterMemberUseCase(memberService member.Service) *RegisterMemberUseCase {
	return &RegisterMemberUseCase{memberService: memberService}
}

// RegisterMemberRequest 办理会员请求DTO
type RegisterMemberRequest struct {
	MemberNumber        string
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Address             string
	City                string
	MembershipType      string
	MembershipStartDate time.Time
	MembershipEndDate   time.Time
	MaxBooksAllowed     int
}

func (uc *RegisterMemberUseCase) Execute(ctx context.Context, req RegisterMemberRequest) (*MemberResponse, error) {
	m, err := uc.memberService.Register(ctx, member.RegisterInput{
		MemberNumber:        req.MemberNumber,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		City:                req.City,
		MembershipType:      member.MembershipType(req.MembershipType),
		MembershipStartDate: req.MembershipStartDate,
		MembershipEndDate:   req.MembershipEndDate,
		MaxBooksAllowed:     req.MaxBooksAllowed,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "member registered", "member_id", m.ID, "member_number", m.MemberNumber)
	return toMemberResponse(m), nil
}

// QueryMembersUseCase 会员查询
type QueryMembersUseCase struct {
	memberService member.Service
	issueRepo     issue.Repository
}

// NewQueryMembersUseCase 创建会员查询用例
func NewQueryMembersUseCase(memberService member.Service, issueRepo issue.Repository) *QueryMembersUseCase {
	return &QueryMembersUseCase{memberService: memberService, issueRepo: issueRepo}
}

// Get 会员详情，附带未缴罚款合计
func (uc *QueryMembersUseCase) Get(ctx context.Context, id uint) (*MemberResponse, error) {
	m, err := uc.memberService.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	outstanding, err := uc.issueRepo.SumOutstandingFines(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	resp := toMemberResponse(m)
	resp.OutstandingFine = &outstanding
	return resp, nil
}

// List 会员列表，可按关键词和状态过滤
func (uc *QueryMembersUseCase) List(ctx context.Context, keyword, status string) ([]*MemberResponse, error) {
	st := member.Status(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, member.ErrInvalidStatus
	}

	members, err := uc.memberService.ListMembers(ctx, member.ListParams{
		Keyword: strings.TrimSpace(keyword),
		Status:  st,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*MemberResponse, len(members))
	for i, m := range members {
		list[i] = toMemberResponse(m)
	}
	return list, nil
}

// ChangeStatusUseCase 变更会员状态
// 暂停或注销后会员不能再借书，已借出的书仍可归还
type ChangeStatusUseCase struct {
	memberService member.Service
}

// NewChangeStatusUseCase 创建变更状态用例
func NewChangeStatusUseCase(memberService member.Service) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{memberService: memberService}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, id uint, status string) (*MemberResponse, error) {
	m, err := uc.memberService.ChangeStatus(ctx, id, member.Status(strings.TrimSpace(status)))
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "membership status changed", "member_id", m.ID, "status", m.MembershipStatus)
	return toMemberResponse(m), nil
}

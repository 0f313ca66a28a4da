package member

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Service 会员领域服务
type Service interface {
	// Register 办理会员
	// 业务规则：
	// - 姓名、地址、城市必填
	// - 邮箱格式合法，统一转小写，不能重复
	// - 手机号必须为10位数字
	// - 会员号为空时自动生成
	Register(ctx context.Context, in RegisterInput) (*Member, error)

	GetMember(ctx context.Context, id uint) (*Member, error)

	ListMembers(ctx context.Context, params ListParams) ([]*Member, error)

	// ChangeStatus 变更会员状态（暂停、注销、恢复）
	ChangeStatus(ctx context.Context, id uint, status Status) (*Member, error)
}

// RegisterInput 办理会员的输入
type RegisterInput struct {
	MemberNumber        string
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Address             string
	City                string
	MembershipType      MembershipType
	MembershipStartDate time.Time
	MembershipEndDate   time.Time
	MaxBooksAllowed     int
}

type service struct {
	repo Repository
}

// NewService 创建会员领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*Member, error) {
	m, err := newMember(in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetMember(ctx context.Context, id uint) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListMembers(ctx context.Context, params ListParams) ([]*Member, error) {
	return s.repo.List(ctx, params)
}

func (s *service) ChangeStatus(ctx context.Context, id uint, status Status) (*Member, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// newMember 校验输入并构造会员实体
// 会员期未填时从今天起算一年
func newMember(in RegisterInput, now time.Time) (*Member, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if !phonePattern.MatchString(in.Phone) {
		return nil, ErrInvalidPhone
	}

	address := strings.TrimSpace(in.Address)
	city := strings.TrimSpace(in.City)
	if address == "" || city == "" {
		return nil, ErrAddressRequired
	}

	membershipType := in.MembershipType
	if membershipType == "" {
		membershipType = MembershipStandard
	}
	if !membershipType.Valid() {
		return nil, ErrInvalidMembershipType
	}

	start := in.MembershipStartDate
	if start.IsZero() {
		start = now
	}
	end := in.MembershipEndDate
	if end.IsZero() {
		end = start.AddDate(1, 0, 0)
	}
	if !end.After(start) {
		return nil, ErrInvalidMembershipPeriod
	}

	maxBooks := in.MaxBooksAllowed
	if maxBooks == 0 {
		maxBooks = DefaultMaxBooksAllowed
	}
	if maxBooks < 1 {
		return nil, ErrInvalidMaxBooks
	}

	number := strings.TrimSpace(in.MemberNumber)
	if number == "" {
		number = GenerateMemberNumber()
	}

	return &Member{
		MemberNumber:        number,
		FirstName:           firstName,
		LastName:            lastName,
		Email:               email,
		Phone:               in.Phone,
		Address:             address,
		City:                city,
		MembershipType:      membershipType,
		MembershipStatus:    StatusActive,
		MembershipStartDate: start,
		MembershipEndDate:   end,
		MaxBooksAllowed:     maxBooks,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memberRepository 会员仓储实现
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// Create 创建会员
// 邮箱、会员号都有唯一索引；冲突时再查一次邮箱，区分两种错误
func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			var n int64
			if err := conn(ctx, r.db).Model(&MemberModel{}).Where("email = ?", m.Email).Count(&n).Error; err != nil {
				return apperrors.Wrap(err, "Failed to create member")
			}
			if n > 0 {
				return member.ErrEmailDuplicate
			}
			return member.ErrMemberNumberDuplicate
		}
		return apperrors.Wrap(err, "Failed to create member")
	}

	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query member")
	}
	return toMemberEntity(&model), nil
}

func (r *memberRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*member.Member, error) {
	result := make(map[uint]*member.Member, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []MemberModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to query members")
	}
	for i := range models {
		result[models[i].ID] = toMemberEntity(&models[i])
	}
	return result, nil
}

// List 查询会员列表，关键词匹配姓名、邮箱、会员号
func (r *memberRepository) List(ctx context.Context, params member.ListParams) ([]*member.Member, error) {
	query := conn(ctx, r.db).Model(&MemberModel{})

	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where(
			"LOWER(first_name) LIKE ? ESCAPE '!' OR LOWER(last_name) LIKE ? ESCAPE '!' OR "+
				"LOWER(email) LIKE ? ESCAPE '!' OR LOWER(member_number) LIKE ? ESCAPE '!'",
			kw, kw, kw, kw)
	}
	if params.Status != "" {
		query = query.Where("membership_status = ?", string(params.Status))
	}

	var models []MemberModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to list members")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

func (r *memberRepository) UpdateStatus(ctx context.Context, m *member.Member) error {
	m.UpdatedAt = time.Now()
	result := conn(ctx, r.db).Model(&MemberModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"membership_status": string(m.MembershipStatus),
			"updated_at":        m.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update member status")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

// LockByID 悲观锁查询（SELECT ... FOR UPDATE），必须在事务内调用
func (r *memberRepository) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to lock member")
	}
	return toMemberEntity(&model), nil
}

// UpdateCounters 写回借阅计数和累计罚款
func (r *memberRepository) UpdateCounters(ctx context.Context, m *member.Member) error {
	if m.CurrentBooksIssued < 0 || m.TotalFine < 0 {
		return errCountersOutOfRange
	}
	m.UpdatedAt = time.Now()
	result := conn(ctx, r.db).Model(&MemberModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"current_books_issued": m.CurrentBooksIssued,
			"total_fine":           m.TotalFine,
			"updated_at":           m.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update member counters")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

var errCountersOutOfRange = apperrors.New(apperrors.ErrCodeDatabaseError, "Member counters out of range")

func toMemberModel(m *member.Member) *MemberModel {
	return &MemberModel{
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

func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:                  model.ID,
		MemberNumber:        model.MemberNumber,
		FirstName:           model.FirstName,
		LastName:            model.LastName,
		Email:               model.Email,
		Phone:               model.Phone,
		Address:             model.Address,
		City:                model.City,
		MembershipType:      member.MembershipType(model.MembershipType),
		MembershipStatus:    member.Status(model.MembershipStatus),
		MembershipStartDate: model.MembershipStartDate,
		MembershipEndDate:   model.MembershipEndDate,
		MaxBooksAllowed:     model.MaxBooksAllowed,
		CurrentBooksIssued:  model.CurrentBooksIssued,
		TotalFine:           model.TotalFine,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/issue"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// issueRepository 借阅记录仓储实现
type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository 创建借阅记录仓储
func NewIssueRepository(db *gorm.DB) issue.Repository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, i *issue.Issue) error {
	model := toIssueModel(i)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return issue.ErrIssueNumberDuplicate
		}
		return apperrors.Wrap(err, "Failed to create issue")
	}

	i.ID = model.ID
	i.CreatedAt = model.CreatedAt
	i.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *issueRepository) FindByID(ctx context.Context, id uint) (*issue.Issue, error) {
	var model IssueModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to query issue")
	}
	return toIssueEntity(&model), nil
}

// LockByID 悲观锁查询（SELECT ... FOR UPDATE）
// 归还、缴费先锁借阅记录，再锁图书、会员，所有写操作按同一顺序加锁
func (r *issueRepository) LockByID(ctx context.Context, id uint) (*issue.Issue, error) {
	var model IssueModel
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to lock issue")
	}
	return toIssueEntity(&model), nil
}

// Update 写回归还日期、状态、罚款
func (r *issueRepository) Update(ctx context.Context, i *issue.Issue) error {
	i.UpdatedAt = time.Now()
	result := conn(ctx, r.db).Model(&IssueModel{}).
		Where("id = ?", i.ID).
		Updates(map[string]interface{}{
			"return_date": i.ReturnDate,
			"status":      string(i.Status),
			"fine":        i.Fine,
			"fine_paid":   i.FinePaid,
			"updated_at":  i.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update issue")
	}
	if result.RowsAffected == 0 {
		return issue.ErrIssueNotFound
	}
	return nil
}

// List 按借出日期倒序查询
func (r *issueRepository) List(ctx context.Context, params issue.ListParams) ([]*issue.Issue, error) {
	query := conn(ctx, r.db).Model(&IssueModel{})

	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}
	if params.MemberID != 0 {
		query = query.Where("member_id = ?", params.MemberID)
	}
	if !params.DueBefore.IsZero() {
		query = query.Where("due_date < ?", params.DueBefore)
	}

	var models []IssueModel
	if err := query.Order("issue_date DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "Failed to list issues")
	}

	issues := make([]*issue.Issue, len(models))
	for i := range models {
		issues[i] = toIssueEntity(&models[i])
	}
	return issues, nil
}

// SumOutstandingFines 会员未缴罚款合计
func (r *issueRepository) SumOutstandingFines(ctx context.Context, memberID uint) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&IssueModel{}).
		Select("COALESCE(SUM(fine), 0)").
		Where("member_id = ? AND fine > 0 AND fine_paid = ?", memberID, false).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "Failed to sum outstanding fines")
	}
	return total, nil
}

func toIssueModel(i *issue.Issue) *IssueModel {
	return &IssueModel{
		ID:          i.ID,
		IssueNumber: i.IssueNumber,
		BookID:      i.BookID,
		MemberID:    i.MemberID,
		IssueDate:   i.IssueDate,
		DueDate:     i.DueDate,
		ReturnDate:  i.ReturnDate,
		Status:      string(i.Status),
		Fine:        i.Fine,
		FinePaid:    i.FinePaid,
		Remarks:     i.Remarks,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toIssueEntity(model *IssueModel) *issue.Issue {
	return &issue.Issue{
		ID:          model.ID,
		IssueNumber: model.IssueNumber,
		BookID:      model.BookID,
		MemberID:    model.MemberID,
		IssueDate:   model.IssueDate,
		DueDate:     model.DueDate,
		ReturnDate:  model.ReturnDate,
		Status:      issue.Status(model.Status),
		Fine:        model.Fine,
		FinePaid:    model.FinePaid,
		Remarks:     model.Remarks,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

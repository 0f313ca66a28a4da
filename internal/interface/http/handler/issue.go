package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appissue "github.com/xiebiao/library/internal/application/issue"
	"github.com/xiebiao/library/internal/domain/issue"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// IssueHandler 借阅台账HTTP处理器
type IssueHandler struct {
	issueBookUseCase  *appissue.IssueBookUseCase
	returnBookUseCase *appissue.ReturnBookUseCase
	payFineUseCase    *appissue.PayFineUseCase
	queryUseCase      *appissue.QueryIssuesUseCase
}

// NewIssueHandler 创建借阅处理器
func NewIssueHandler(
	issueBookUseCase *appissue.IssueBookUseCase,
	returnBookUseCase *appissue.ReturnBookUseCase,
	payFineUseCase *appissue.PayFineUseCase,
	queryUseCase *appissue.QueryIssuesUseCase,
) *IssueHandler {
	return &IssueHandler{
		issueBookUseCase:  issueBookUseCase,
		returnBookUseCase: returnBookUseCase,
		payFineUseCase:    payFineUseCase,
		queryUseCase:      queryUseCase,
	}
}

// IssueBook 借出图书
// @Summary      借出图书
// @Description  在一个事务内创建借阅记录、可借副本-1、会员借阅数+1
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.IssueBookRequest true "借出信息"
// @Success      201 {object} response.Response{data=appissue.IssueResponse} "借出成功"
// @Failure      400 {object} response.Response "参数缺失、无可借副本、会员非Active、已达上限"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书或会员不存在"
// @Router       /issues/issue [post]
func (h *IssueHandler) IssueBook(c *gin.Context) {
	var req dto.IssueBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.issueBookUseCase.Execute(c.Request.Context(), appissue.IssueBookRequest{
		BookID:   req.BookID,
		MemberID: req.MemberID,
		DueDate:  dueDate,
		Remarks:  req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book issued successfully", result)
}

// ReturnBook 归还图书
// @Summary      归还图书
// @Description  计算逾期罚款，记录归还日期，可借副本+1，会员借阅数-1
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.IssueIDRequest true "借阅记录ID"
// @Success      200 {object} response.Response{data=appissue.ReturnBookResponse} "归还成功"
// @Failure      400 {object} response.Response "缺少借阅ID或已归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /issues/return [post]
func (h *IssueHandler) ReturnBook(c *gin.Context) {
	var req dto.IssueIDRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), req.IssueID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Book returned successfully", result)
}

// PayFine 缴纳罚款
// @Summary      缴纳罚款
// @Description  标记罚款已缴；已缴过的记录原样返回
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.IssueIDRequest true "借阅记录ID"
// @Success      200 {object} response.Response{data=appissue.IssueResponse} "缴费成功"
// @Failure      400 {object} response.Response "缺少借阅ID或没有罚款"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /issues/pay-fine [post]
func (h *IssueHandler) PayFine(c *gin.Context) {
	var req dto.IssueIDRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.payFineUseCase.Execute(c.Request.Context(), req.IssueID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Fine paid successfully", result)
}

// GetIssue 借阅详情
// @Summary      借阅详情
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appissue.IssueDetail}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	id, err := parseID(c, "id", issue.ErrIssueNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.queryUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "", result)
}

// ListAll 全部借阅记录
// @Summary      全部借阅记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appissue.IssueDetail}
// @Router       /issues/all [get]
func (h *IssueHandler) ListAll(c *gin.Context) {
	h.renderList(c, h.queryUseCase.ListAll)
}

// ListActive 借出中的记录
// @Summary      借出中的记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appissue.IssueDetail}
// @Router       /issues/active [get]
func (h *IssueHandler) ListActive(c *gin.Context) {
	h.renderList(c, h.queryUseCase.ListActive)
}

// ListOverdue 当前逾期未还的记录
// @Summary      逾期未还
// @Description  状态为Issued且应还日期早于当前时间
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appissue.IssueDetail}
// @Router       /issues/overdue [get]
func (h *IssueHandler) ListOverdue(c *gin.Context) {
	h.renderList(c, h.queryUseCase.ListOverdue)
}

// ListByMember 会员的借阅记录
// @Summary      会员借阅记录
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=[]appissue.IssueDetail}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id}/issues [get]
func (h *IssueHandler) ListByMember(c *gin.Context) {
	memberID, err := parseID(c, "id", member.ErrMemberNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.queryUseCase.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, result, len(result))
}

func (h *IssueHandler) renderList(c *gin.Context, list func(ctx context.Context) ([]appissue.IssueDetail, error)) {
	result, err := list(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, result, len(result))
}

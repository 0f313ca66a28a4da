package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	registerUseCase     *appmember.RegisterMemberUseCase
	queryUseCase        *appmember.QueryMembersUseCase
	changeStatusUseCase *appmember.ChangeStatusUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	registerUseCase *appmember.RegisterMemberUseCase,
	queryUseCase *appmember.QueryMembersUseCase,
	changeStatusUseCase *appmember.ChangeStatusUseCase,
) *MemberHandler {
	return &MemberHandler{
		registerUseCase:     registerUseCase,
		queryUseCase:        queryUseCase,
		changeStatusUseCase: changeStatusUseCase,
	}
}

// AddMember 办理会员
// @Summary      办理会员
// @Tags         会员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddMemberRequest true "会员信息"
// @Success      201 {object} response.Response{data=appmember.MemberResponse} "办理成功"
// @Failure      400 {object} response.Response "参数错误或邮箱已存在"
// @Router       /members/add [post]
func (h *MemberHandler) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	start, err := dto.ParseDate(req.MembershipStartDate)
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("Membership start date must be YYYY-MM-DD or RFC3339"))
		return
	}
	end, err := dto.ParseDate(req.MembershipEndDate)
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("Membership end date must be YYYY-MM-DD or RFC3339"))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appmember.RegisterMemberRequest{
		MemberNumber:        req.MemberNumber,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		City:                req.City,
		MembershipType:      req.MembershipType,
		MembershipStartDate: start,
		MembershipEndDate:   end,
		MaxBooksAllowed:     req.MaxBooksAllowed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", result)
}

// ListMembers 会员列表
// @Summary      会员列表
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "姓名、邮箱、会员编号关键词"
// @Param        status query string false "Active | Suspended | Cancelled"
// @Success      200 {object} response.Response{data=[]appmember.MemberResponse}
// @Router       /members/all [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	result, err := h.queryUseCase.List(c.Request.Context(), c.Query("q"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, result, len(result))
}

// GetMember 会员详情
// @Summary      会员详情
// @Description  附带未缴罚款合计outstandingFine
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=appmember.MemberResponse}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := parseID(c, "id", member.ErrMemberNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.queryUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "", result)
}

// ChangeStatus 变更会员状态
// @Summary      变更会员状态
// @Tags         会员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Param        request body dto.ChangeStatusRequest true "新状态"
// @Success      200 {object} response.Response{data=appmember.MemberResponse}
// @Failure      400 {object} response.Response "状态不合法"
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id}/status [put]
func (h *MemberHandler) ChangeStatus(c *gin.Context) {
	id, err := parseID(c, "id", member.ErrMemberNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, member.ErrInvalidStatus)
		return
	}

	result, err := h.changeStatusUseCase.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Member status updated", result)
}

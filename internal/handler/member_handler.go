package handler

import (
	"errors"
	"net/http"

	"communityhub/internal/middleware"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	svc *service.MemberService
}

func NewMemberHandler(svc *service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

type MemberAddReq struct {
	Community string `json:"community" binding:"required"`
	User      string `json:"user" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

func (h *MemberHandler) Add(c *gin.Context) {
	var req MemberAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, http.StatusBadRequest, bindingErrors(err)...)
		return
	}

	member, err := h.svc.Add(c.Request.Context(), middleware.CallerID(c), req.Community, req.User, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAllowed):
			pkg.Fail(c, http.StatusForbidden, pkg.FieldError{
				Message: "You are not authorized to perform this action.",
				Code:    pkg.CodeNotAllowed,
			})
		case errors.Is(err, service.ErrResourceNotFound):
			pkg.Fail(c, http.StatusNotFound, pkg.FieldError{
				Message: "Community, user or role not found.",
				Code:    pkg.CodeNotFound,
			})
		case errors.Is(err, service.ErrAlreadyMember):
			pkg.Fail(c, http.StatusBadRequest, pkg.FieldError{
				Param:   "user",
				Message: "User is already added in the community.",
				Code:    pkg.CodeAlreadyMember,
			})
		default:
			internalError(c)
		}
		return
	}

	pkg.OK(c, http.StatusOK, gin.H{
		"id":         member.ID,
		"community":  member.CommunityID,
		"user":       member.UserID,
		"role":       member.RoleID,
		"created_at": pkg.FormatTime(member.CreatedAt),
	}, nil)
}

func (h *MemberHandler) Remove(c *gin.Context) {
	err := h.svc.Remove(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		// 未找到与无权限同样响应，避免枚举成员ID
		if errors.Is(err, service.ErrMemberNotFound) {
			pkg.Fail(c, http.StatusForbidden, pkg.FieldError{
				Message: "Member not found.",
				Code:    pkg.CodeNotFound,
			})
			return
		}
		internalError(c)
		return
	}

	pkg.OKStatus(c, http.StatusOK)
}

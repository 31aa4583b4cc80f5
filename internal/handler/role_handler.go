package handler

import (
	"errors"
	"net/http"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	svc *service.RoleService
}

func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

type RoleCreateReq struct {
	Name string `json:"name" binding:"required,min=2,max=64"`
}

type roleData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func roleView(r *model.Role) roleData {
	return roleData{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: pkg.FormatTime(r.CreatedAt),
		UpdatedAt: pkg.FormatTime(r.UpdatedAt),
	}
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, http.StatusBadRequest, bindingErrors(err)...)
		return
	}

	role, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrRoleExists) {
			pkg.Fail(c, http.StatusBadRequest, pkg.FieldError{
				Param:   "name",
				Message: "Role already exists.",
				Code:    pkg.CodeExists,
			})
			return
		}
		internalError(c)
		return
	}

	pkg.OK(c, http.StatusCreated, roleView(role), nil)
}

func (h *RoleHandler) GetAll(c *gin.Context) {
	roles, meta, err := h.svc.List(c.Request.Context(), pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrPageOutOfRange) {
			pkg.Fail(c, http.StatusBadRequest, pkg.FieldError{
				Param:   "page",
				Message: "Invalid page number.",
				Code:    pkg.CodeInvalidInput,
			})
			return
		}
		internalError(c)
		return
	}

	data := make([]roleData, 0, len(roles))
	for i := range roles {
		data = append(data, roleView(&roles[i]))
	}
	pkg.OK(c, http.StatusOK, data, meta)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

type CommunityCreateReq struct {
	Name string `json:"name" binding:"required,min=2,max=64"`
}

type communityData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Owner     string `json:"owner"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func communityView(c *model.Community) communityData {
	return communityData{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Owner:     c.Owner,
		CreatedAt: pkg.FormatTime(c.CreatedAt),
		UpdatedAt: pkg.FormatTime(c.UpdatedAt),
	}
}

// pageParam reads ?page=, defaulting to 1. A non-numeric value also falls
// back to 1 rather than erroring.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, http.StatusBadRequest, bindingErrors(err)...)
		return
	}

	community, err := h.svc.Create(c.Request.Context(), middleware.CallerID(c), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugTaken):
			pkg.Fail(c, http.StatusBadRequest, pkg.FieldError{
				Param:   "name",
				Message: "Community with the same name already exists.",
				Code:    pkg.CodeExists,
			})
		case errors.Is(err, service.ErrAlreadyMember):
			pkg.Fail(c, http.StatusBadRequest, pkg.FieldError{
				Param:   "user",
				Message: "User is already a member of the community.",
				Code:    pkg.CodeAlreadyMember,
			})
		default:
			internalError(c)
		}
		return
	}

	pkg.OK(c, http.StatusOK, communityView(community), nil)
}

func (h *CommunityHandler) GetAll(c *gin.Context) {
	views, meta, err := h.svc.ListAll(c.Request.Context(), pageParam(c))
	if err != nil {
		internalError(c)
		return
	}
	if views == nil {
		views = []service.CommunityView{}
	}
	pkg.OK(c, http.StatusOK, views, meta)
}

func (h *CommunityHandler) GetMembers(c *gin.Context) {
	views, meta, err := h.svc.ListMembers(c.Request.Context(), c.Param("id"), pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			pkg.Fail(c, http.StatusNotFound, pkg.FieldError{
				Message: "Community not found.",
				Code:    pkg.CodeNotFound,
			})
			return
		}
		internalError(c)
		return
	}
	if views == nil {
		views = []service.MemberView{}
	}
	pkg.OK(c, http.StatusOK, views, meta)
}

func (h *CommunityHandler) GetOwned(c *gin.Context) {
	communities, meta, err := h.svc.ListOwned(c.Request.Context(), middleware.CallerID(c), pageParam(c))
	if err != nil {
		internalError(c)
		return
	}

	data := make([]communityData, 0, len(communities))
	for i := range communities {
		data = append(data, communityView(&communities[i]))
	}
	pkg.OK(c, http.StatusOK, data, meta)
}

func (h *CommunityHandler) GetJoined(c *gin.Context) {
	views, meta, err := h.svc.ListJoined(c.Request.Context(), middleware.CallerID(c), pageParam(c))
	if err != nil {
		internalError(c)
		return
	}
	if views == nil {
		views = []service.CommunityView{}
	}
	pkg.OK(c, http.StatusOK, views, meta)
}

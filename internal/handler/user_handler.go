package handler

import (
	"errors"
	"net/http"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type SignupReq struct {
	Name     string `json:"name" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type SigninReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func userView(u *model.User) userData {
	return userData{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: pkg.FormatTime(u.CreatedAt),
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, http.StatusBadRequest, bindingErrors(err)...)
		return
	}

	user, token, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			pkg.Fail(c, http.StatusBadRequest, pkg.FieldError{
				Param:   "email",
				Message: "Email is already registered.",
				Code:    pkg.CodeExists,
			})
			return
		}
		internalError(c)
		return
	}

	pkg.OK(c, http.StatusCreated, userView(user), gin.H{"access_token": token})
}

func (h *UserHandler) Signin(c *gin.Context) {
	var req SigninReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, http.StatusBadRequest, bindingErrors(err)...)
		return
	}

	user, token, err := h.svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			pkg.Fail(c, http.StatusUnauthorized, pkg.FieldError{
				Message: "Invalid credentials.",
				Code:    pkg.CodeInvalidCredentials,
			})
			return
		}
		internalError(c)
		return
	}

	pkg.OK(c, http.StatusOK, userView(user), gin.H{"access_token": token})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			pkg.Fail(c, http.StatusNotFound, pkg.FieldError{
				Message: "User not found.",
				Code:    pkg.CodeNotFound,
			})
			return
		}
		internalError(c)
		return
	}

	pkg.OK(c, http.StatusOK, userView(user), nil)
}

func internalError(c *gin.Context) {
	pkg.Fail(c, http.StatusInternalServerError, pkg.FieldError{
		Message: "Internal Server Error.",
		Code:    pkg.CodeInternal,
	})
}

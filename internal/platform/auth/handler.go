package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sarpras-backend/internal/platform/apierr"
)

type AuthHandler struct{ svc AuthService }

// RegisterRoutes: /login は公開、アカウント操作は認証済みグループに載せる
func RegisterRoutes(public, protected gin.IRoutes, svc AuthService) {
	h := &AuthHandler{svc: svc}
	public.POST("/login", h.Login)
	protected.POST("/accounts", h.Register)
	protected.DELETE("/accounts/:id", h.DisableAccount)
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

//	@Summary		Operator login
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	LoginRequest	true	"credentials"
//	@Success		200	{object}	LoginResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Router			/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "Invalid request"))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.Body(CodeUnauthenticated, "ID atau kata sandi salah"))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Message: "Login successful"})
}

type RegisterRequest struct {
	ID       string `json:"id" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

//	@Summary		Register operator account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	RegisterRequest	true	"account"
//	@Success		201	{object}	map[string]string
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		409	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/accounts [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "id and password (min 8 chars) are required"))
		return
	}

	if err := h.svc.Register(c.Request.Context(), req.ID, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusConflict, apierr.Body(apierr.CodeConflict, "ID already exists"))
		case errors.Is(err, ErrInvalidInput):
			c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierr.Body(apierr.CodeInternal, "register failed"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": req.ID, "message": "registered"})
}

//	@Summary		Disable operator account
//	@Tags			auth
//	@Produce		json
//	@Param			id	path	string	true	"account id"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/accounts/{id} [delete]
func (h *AuthHandler) DisableAccount(c *gin.Context) {
	id := c.Param("id")
	if id == OperatorID(c) {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "cannot disable your own account"))
		return
	}

	if err := h.svc.Disable(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, apierr.Body(apierr.CodeNotFound, "not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierr.Body(apierr.CodeInternal, "disable failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "disabled"})
}

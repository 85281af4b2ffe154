package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/middleware"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/services"
)

type AuthHandler struct {
	authService services.AuthService
	helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, helper: h}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendCreated(c, "Registration successful. Your account is pending admin approval.", gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "Login successful", res)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	user, err := h.authService.GetProfile(c.Request.Context(), current.ID)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", gin.H{"user": user})
}

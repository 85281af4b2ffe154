package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/middleware"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/services"
)

type UserHandler struct {
	userService services.UserService
	helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, helper: h}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	page, err := h.helper.ParsePagination(c)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	filter := models.UserFilter{}
	if raw, ok := c.GetQuery("role"); ok {
		role := models.UserRole(raw)
		if !role.Valid() {
			h.helper.SendError(c, models.NewValidationError("role", "role must be one of [ADMIN CONTRIBUTOR]"))
			return
		}
		filter.Role = role
	}

	filter.Approved, err = h.helper.ParseBoolQuery(c, "approved")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	result, err := h.userService.List(c.Request.Context(), filter, page)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", result)
}

func (h *UserHandler) GetStats(c *gin.Context) {
	stats, err := h.userService.Stats(c.Request.Context())
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", stats)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", gin.H{"user": user})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendCreated(c, "User created successfully", gin.H{"user": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	var req models.UpdateUserRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), current, id, req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "User updated successfully", gin.H{"user": user})
}

func (h *UserHandler) ApproveUser(c *gin.Context) {
	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	var req models.ApproveUserRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	user, err := h.userService.SetApproval(c.Request.Context(), id, *req.Approved)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	message := "User rejected successfully"
	if *req.Approved {
		message = "User approved successfully"
	}
	h.helper.SendSuccess(c, message, gin.H{"user": user})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	var req models.ResetPasswordRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "Password reset successfully", nil)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), current, id); err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "User deleted successfully", nil)
}

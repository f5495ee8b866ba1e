package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/dto"
	"github.com/triviapro/user-service/internal/service"
)

// UserHandler handles profile and stat requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List returns all user records
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.User
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetByID returns one user record
// @Summary Get a user by id
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetProfile returns the authenticated user's record
// @Summary Get own profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile merges the supplied fields into the authenticated user's record
// @Summary Update own profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.ProfilePatch true "Profile fields"
// @Success 200 {object} domain.User
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateStats applies the supplied stat fields to the authenticated user
// @Summary Update own stats
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.StatsPatch true "Stat fields"
// @Success 200 {object} domain.User
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/stats [put]
func (h *UserHandler) UpdateStats(c *gin.Context) {
	var patch domain.StatsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.userService.UpdateStats(c.Request.Context(), c.GetString("user_id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteProfile removes the authenticated user's account
// @Summary Delete own account
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /users/profile [delete]
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "User account deleted successfully",
	})
}

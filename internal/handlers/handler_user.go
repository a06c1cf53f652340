package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)                        // Admin only
		users.POST("", h.createUser)                      // Admin only
		users.GET("/:id", h.getUser)                      // Own or admin
		users.PUT("/:id", h.updateUser)                   // Own or admin
		users.DELETE("/:id", h.deleteUser)                // Admin only
		users.PUT("/:id/password", h.changePassword)      // Own or admin
		users.PATCH("/:id/toggle-status", h.toggleStatus) // Admin only
	}
}

// listUsers godoc
// @Summary List users
// @Description Lists users, newest first. Administrators only.
// @Tags users
// @Produce json
// @Param role query string false "Filter by role" Enums(ADMIN, MANAGER, EMPLOYEE)
// @Param isActive query bool false "Filter by active flag"
// @Param search query string false "Matches first name, last name or email"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.SuccessResponse{data=object{users=[]dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), principal, params.ToUserFilter())
	if err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Users retrieved successfully", gin.H{"users": dto.ToUserResponses(users)}))
}

// createUser godoc
// @Summary Create a user
// @Description Creates a user with any role. Administrators only.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.SuccessResponse{data=object{user=dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("User created successfully", gin.H{"user": dto.ToUserResponse(user)}))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=object{user=dto.UserResponse}}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User retrieved successfully", gin.H{"user": dto.ToUserResponse(user)}))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates a user. Role and active flag are silently ignored unless the caller is an administrator.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=object{user=dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User updated successfully", gin.H{"user": dto.ToUserResponse(user)}))
}

// changePassword godoc
// @Summary Change a password
// @Description Users changing their own password must supply the current one.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param password body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), principal, c.Param("id"), req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Password updated successfully", nil))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Deletes a user together with the projects, assignments, KPIs and values that reference it.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User deleted successfully", nil))
}

// toggleStatus godoc
// @Summary Toggle a user's active flag
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=object{user=dto.UserResponse}}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/toggle-status [patch]
func (h *userHandler) toggleStatus(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleUserStatus(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to toggle user status")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("User status updated successfully", gin.H{"user": dto.ToUserResponse(user)}))
}

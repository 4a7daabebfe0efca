package http

import (
	"net/http"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService ports.UserService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required" example:"Awa"`
	LastName  string `json:"lastName" binding:"required" example:"Diop"`
	Address   string `json:"address,omitempty" example:"12 rue Carnot, Dakar"`
	Email     string `json:"email" binding:"required" example:"awa@example.com"`
	Password  string `json:"password" binding:"required" example:"s3cret!"`
	Role      string `json:"role,omitempty" example:"client"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" example:"Awa"`
	LastName  *string `json:"lastName,omitempty" example:"Diop"`
	Address   *string `json:"address,omitempty" example:"12 rue Carnot, Dakar"`
	Email     *string `json:"email,omitempty" example:"awa@example.com"`
	Password  *string `json:"password,omitempty" example:"n3w-s3cret"`
	Role      *string `json:"role,omitempty" example:"mecanicien"`
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required" example:"awa@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type UsersResponse struct {
	Message string         `json:"message"`
	Users   []*domain.User `json:"users"`
}

func NewUserHandler(userService ports.UserService, logger ports.LoggerPort, metrics ports.MetricsPort) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "Email already in use"
// @Router / [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create user", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleClient
	}
	user := &domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Email:     req.Email,
		Role:      role,
	}

	created, err := h.userService.CreateUser(c.Request.Context(), user, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Message: "User created successfully", User: created})
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} UsersResponse
// @Failure 500 {object} errorResponse
// @Router / [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}

	c.JSON(http.StatusOK, UsersResponse{Message: "Users retrieved successfully", Users: users})
}

// @Summary Get a user
// @Description Looks the user up by email when the identifier contains '@', by id otherwise
// @Tags users
// @Produce json
// @Param identifier path string true "User ID or email"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /{identifier} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	user, err := h.userService.GetUser(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Message: "User retrieved successfully", User: user})
}

// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user := &domain.User{ID: id}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
	}
	var password string
	if req.Password != nil {
		password = *req.Password
	}

	updated, err := h.userService.UpdateUser(c.Request.Context(), user, password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Message: "User updated successfully", User: updated})
}

// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Message: "User deleted successfully"})
}

// @Summary Verify credentials
// @Description Used by the auth service to check an email and password pair
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errorResponse
// @Router /credentials/verify [post]
func (h *UserHandler) VerifyCredentials(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Message: "Credentials verified", User: user})
}

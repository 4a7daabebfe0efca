package http

import (
	"net/http"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type LoginRequest struct {
	Email    string `json:"email" example:"awa@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required" example:"Awa"`
	LastName  string `json:"lastName" binding:"required" example:"Diop"`
	Address   string `json:"address,omitempty" example:"12 rue Carnot, Dakar"`
	Email     string `json:"email" binding:"required" example:"awa@example.com"`
	Password  string `json:"password" binding:"required" example:"s3cret!"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type VerifyResponse struct {
	Message string               `json:"message"`
	Payload *domain.TokenPayload `json:"payload"`
}

func NewAuthHandler(authService ports.AuthService, logger ports.LoggerPort, metrics ports.MetricsPort) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Message: "Login successful", Token: token, User: user})
}

// @Summary Sign up
// @Description Creates a client account and logs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Account data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "Email already in use"
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in signup", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user := &domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Email:     req.Email,
		Role:      domain.RoleClient,
	}
	token, created, err := h.authService.Signup(c.Request.Context(), user, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Message: "Signup successful", Token: token, User: created})
}

// @Summary Log out
// @Description Revokes the bearer token until it expires
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse
// @Failure 401 {object} errorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	token, ok := bearerToken(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "Authorization header is missing or malformed")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Message: "Logout successful"})
}

// @Summary Verify a token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} VerifyResponse
// @Failure 401 {object} errorResponse
// @Router /verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	token, ok := bearerToken(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "Authorization header is missing or malformed")
		return
	}

	payload, err := h.authService.Verify(c.Request.Context(), token)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{Message: "Token is valid", Payload: payload})
}

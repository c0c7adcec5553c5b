package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amitEt25/aiven-auth-assigment/internal/common"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/users"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// writeError maps service errors to the documented HTTP responses.
// Anything unrecognized is logged and reported as a generic 500.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{
			Message: "User with this email already exists",
			Code:    "user_exists",
		})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{
			Message: "Incorrect email address or password",
			Code:    "invalid_credentials",
		})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Message: "User not found",
			Code:    "not_found",
		})
	default:
		s.logger.Error(c.Request.Context(), "Unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Something went wrong",
			Code:    "internal_error",
		})
	}
}

func (s *Server) recordAuthAttempt(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.AuthAttempts.WithLabelValues(operation, outcome).Inc()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: "Invalid request body",
			Code:    "validation_error",
		})
		return
	}

	res, err := s.users.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		s.recordAuthAttempt("register", "failure")
		s.writeError(c, err)
		return
	}

	s.recordAuthAttempt("register", "success")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    toUserResponse(res.User),
		"token":   res.Token,
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: "Invalid request body",
			Code:    "validation_error",
		})
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.recordAuthAttempt("login", "failure")
		s.writeError(c, err)
		return
	}

	s.recordAuthAttempt("login", "success")
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    toUserResponse(res.User),
		"token":   res.Token,
	})
}

func (s *Server) profile(c *gin.Context) {
	identity, ok := IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{
			Message: "No token provided",
			Code:    "no_token",
		})
		return
	}

	user, err := s.users.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (s *Server) listUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]userResponse, 0, len(list))
	for _, u := range list {
		result = append(result, toUserResponse(u))
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

package public

import (
	"errors"

	handlershared "github.com/gemstone-shop/gemstone/internal/http/handlers/shared"
	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Profile *struct {
		PhoneNumber string `json:"phone_number"`
		Address     string `json:"address"`
		City        string `json:"city"`
		State       string `json:"state"`
		Country     string `json:"country"`
		PostalCode  string `json:"postal_code"`
	} `json:"profile"`
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Profile != nil {
		input.Profile = &models.Profile{
			PhoneNumber: req.Profile.PhoneNumber,
			Address:     req.Profile.Address,
			City:        req.Profile.City,
			State:       req.Profile.State,
			Country:     req.Profile.Country,
			PostalCode:  req.Profile.PostalCode,
		}
	}

	user, err := h.AuthService.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			handlershared.RespondFieldErrors(c, map[string][]string{
				"email": {"a user with this email already exists"},
			})
		case errors.Is(err, service.ErrPasswordMismatch):
			handlershared.RespondFieldErrors(c, map[string][]string{
				"password2": {"passwords do not match"},
			})
		case errors.Is(err, service.ErrWeakPassword):
			handlershared.RespondFieldErrors(c, map[string][]string{
				"password": {err.Error()},
			})
		case errors.Is(err, service.ErrInvalidEmail):
			handlershared.RespondFieldErrors(c, map[string][]string{
				"email": {"enter a valid email address"},
			})
		default:
			respondError(c, response.CodeInternal, "registration failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "registered", user)
}

// TokenRequest is the login form.
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token issues an access/refresh pair for valid credentials.
func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	pair, _, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One generic message for every failure mode.
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, pair)
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshToken exchanges a refresh token for a new access token.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	access, err := h.AuthService.Refresh(req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			respondError(c, response.CodeUnauthorized, "token invalid or expired", nil)
			return
		}
		respondError(c, response.CodeInternal, "token refresh failed", err)
		return
	}

	response.Success(c, gin.H{"access": access})
}

// GetMe returns the current user.
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetMe(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	response.Success(c, user)
}

// UpdateMeRequest carries the editable user fields.
type UpdateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateMe updates the current user.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.AuthService.UpdateMe(userID, service.UpdateMeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user update failed", err)
		return
	}
	response.Success(c, user)
}

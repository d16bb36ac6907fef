package public

import (
	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the current user's profile, creating an empty one
// on first access.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	profile, err := h.AuthService.GetProfile(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}
	response.Success(c, profile)
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	PostalCode  *string `json:"postal_code"`
}

// UpdateProfile updates the current user's profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	profile, err := h.AuthService.UpdateProfile(userID, service.UpdateProfileInput{
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "profile update failed", err)
		return
	}
	response.Success(c, profile)
}

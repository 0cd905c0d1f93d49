package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvps-print/printshop-backend/internal/users/domain"
)

// GetRole auto-provisions the users row and reports the role. A blocked user
// gets the distinct blocked signal; unverified users still receive their role
// here — the verification gate is served by the access-check endpoint.
func (h *Handler) GetRole(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}

	if _, err := h.users.EnsureRole(c.Request.Context(), email); err != nil {
		log.Printf("[users] failed to ensure role for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not get user role"})
		return
	}

	blocked, err := h.users.IsBlocked(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not get user role"})
		return
	}
	if blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "blocked"})
		return
	}

	role, err := h.users.GetRole(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not get user role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

type updateRoleReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and role are required."})
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), req.Email, req.Role); err != nil {
		if errors.Is(err, domain.ErrProtectedAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "❌ Cannot change super admin role."})
			return
		}
		log.Printf("[users] failed to update role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update role."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("✅ Role updated to %s", req.Role)})
}

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		log.Printf("[users] error fetching users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type emailReq struct {
	Email string `json:"email"`
}

func (h *Handler) BlockUser(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}

	if err := h.users.Block(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrProtectedAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot block protected admin."})
			return
		}
		log.Printf("[users] failed to block user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ User blocked successfully."})
}

func (h *Handler) UnblockUser(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}

	found, err := h.users.Unblock(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("[users] error inside unblock-user: %v", err)
		c.JSON(http.StatusOK, gin.H{"error": "Failed to unblock user."})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"message": "✅ User was not blocked (no record found)."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ User unblocked successfully."})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrProtectedAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete protected admin."})
			return
		}
		log.Printf("[users] failed to delete user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ User deleted successfully."})
}

type updateProfileReq struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	MobileNumber   string `json:"mobileNumber"`
	MobileVerified bool   `json:"mobileVerified"`
}

// UpdateProfile is a full-record replace: callers must send the merged
// profile, unsupplied fields are stored as sent.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	p := domain.Profile{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MobileNumber:   req.MobileNumber,
		MobileVerified: req.MobileVerified,
	}
	if err := h.users.UpsertProfile(c.Request.Context(), p); err != nil {
		log.Printf("[users] failed to update profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ Profile updated successfully!"})
}

func (h *Handler) GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	p, err := h.users.GetProfile(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileMissing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("[users] failed to fetch profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) VerifyMobileManual(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if _, err := h.users.ToggleMobileVerified(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrProfileMissing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("[users] failed to toggle mobile verification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle mobile verification."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ Mobile verification status updated!"})
}

type createProfileReq struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MobileNumber string `json:"mobileNumber"`
}

func (h *Handler) CreateUserProfile(c *gin.Context) {
	var req createProfileReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.users.EnsureRole(ctx, req.Email); err != nil {
		log.Printf("[users] failed to create user profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}
	p := domain.Profile{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
	}
	if err := h.users.UpsertProfile(ctx, p); err != nil {
		log.Printf("[users] failed to create user profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

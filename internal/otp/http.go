package otp

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type sendReq struct {
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil || req.MobileNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mobile number required"})
		return
	}

	sessionID, err := h.svc.SendOTP(c.Request.Context(), req.MobileNumber, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMobile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 10-digit mobile number."})
		case errors.Is(err, ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many OTP requests. Try again shortly."})
		default:
			log.Printf("[otp] failed to send OTP: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

type verifyReq struct {
	SessionID string `json:"sessionId"`
	OTP       string `json:"otp"`
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" || req.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID and OTP required"})
		return
	}

	ok, err := h.svc.VerifyOTP(c.Request.Context(), req.SessionID, req.OTP)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-digit OTP."})
			return
		}
		log.Printf("[otp] verification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/send-otp", h.SendOTP)
	rg.POST("/verify-otp", h.VerifyOTP)
}

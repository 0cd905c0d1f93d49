package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvps-print/printshop-backend/internal/cart/domain"
	"github.com/mvps-print/printshop-backend/internal/cart/repository"
)

type Handler struct {
	carts *repository.CartRepository
}

func New(carts *repository.CartRepository) *Handler {
	return &Handler{carts: carts}
}

type addReq struct {
	UserEmail string         `json:"userEmail"`
	Type      string         `json:"type"`
	ItemID    string         `json:"itemId"`
	Details   map[string]any `json:"details"`
}

func (h *Handler) Add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserEmail == "" || req.Type == "" || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	item := domain.Item{
		UserEmail: req.UserEmail,
		Type:      req.Type,
		ItemID:    req.ItemID,
		Details:   req.Details,
	}
	if err := h.carts.Add(c.Request.Context(), item); err != nil {
		log.Printf("[cart] failed to add to cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

func (h *Handler) List(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}

	items, err := h.carts.ListByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("[cart] failed to get cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type removeReq struct {
	ID json.Number `json:"id"`
}

func (h *Handler) Remove(c *gin.Context) {
	var req removeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID.String() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart item ID required"})
		return
	}
	id, err := req.ID.Int64()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart item ID required"})
		return
	}

	if err := h.carts.Remove(c.Request.Context(), id); err != nil {
		log.Printf("[cart] failed to remove item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/cart/add", h.Add)
	rg.GET("/cart", h.List)
	rg.POST("/cart/remove", h.Remove)
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mvps-print/printshop-backend/internal/orders/domain"
	"github.com/mvps-print/printshop-backend/internal/orders/service"
)

// SubmitOrder is the file-based print flow: multipart files plus per-file
// page counts, uploaded to object storage under the assigned order number.
func (h *Handler) SubmitOrder(c *gin.Context) {
	user := c.PostForm("user")
	printType := c.PostForm("printType")
	totalCostRaw := c.PostForm("totalCost")
	createdAt := c.PostForm("createdAt")

	if user == "" || totalCostRaw == "" || createdAt == "" || printType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded."})
		return
	}

	totalCost, err := strconv.ParseFloat(totalCostRaw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	var pageCounts []int
	if raw := c.PostForm("pageCounts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pageCounts); err != nil {
			log.Printf("[orders] bad pageCounts %q: %v", raw, err)
		}
	}

	var items []service.StationeryLine
	if raw := c.PostForm("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Printf("[orders] bad items %q: %v", raw, err)
		}
	}

	files := make([]service.FileUpload, 0, len(form.File["files"]))
	for i, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store print order."})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store print order."})
			return
		}
		pages := 0
		if i < len(pageCounts) {
			pages = pageCounts[i]
		}
		files = append(files, service.FileUpload{Name: fh.Filename, Data: data, Pages: pages})
	}

	sub := service.PrintSubmission{
		UserEmail:     user,
		PrintType:     printType,
		SideOption:    c.PostForm("sideOption"),
		SpiralBinding: c.PostForm("spiralBinding") == "true",
		TotalCost:     totalCost,
		CreatedAt:     parseCreatedAt(createdAt),
		Files:         files,
		Items:         items,
	}

	orderNumber, err := h.orders.SubmitPrint(c.Request.Context(), sub)
	if err != nil {
		log.Printf("[orders] error saving print order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store print order."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderNumber": orderNumber, "totalCost": totalCost})
}

type stationeryOrderReq struct {
	User      string                   `json:"user"`
	Items     []service.StationeryLine `json:"items"`
	TotalCost float64                  `json:"totalCost"`
	CreatedAt string                   `json:"createdAt"`
}

func (h *Handler) SubmitStationeryOrder(c *gin.Context) {
	var req stationeryOrderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.User == "" || len(req.Items) == 0 || req.TotalCost == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing stationery order data."})
		return
	}

	sub := service.StationerySubmission{
		UserEmail: req.User,
		Items:     req.Items,
		TotalCost: req.TotalCost,
		CreatedAt: parseCreatedAt(req.CreatedAt),
	}
	orderNumber, err := h.orders.SubmitStationery(c.Request.Context(), sub)
	if err != nil {
		log.Printf("[orders] failed to store stationery order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store stationery order."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderNumber": orderNumber, "totalCost": req.TotalCost})
}

type confirmPaymentReq struct {
	OrderNumber string `json:"orderNumber"`
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number required."})
		return
	}

	if err := h.orders.ConfirmPayment(c.Request.Context(), req.OrderNumber); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}
		log.Printf("[orders] payment confirmation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confirmation email sent."})
}

func (h *Handler) GetSignedURL(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename required"})
		return
	}

	url, err := h.orders.SignedURL(c.Request.Context(), filename)
	if err != nil {
		log.Printf("[orders] error generating signed URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate signed URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.orders.Orders(c.Request.Context(), c.Query("email"))
	if err != nil {
		log.Printf("[orders] error fetching orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders."})
		return
	}

	normalized := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		normalized = append(normalized, toOrderJSON(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": normalized})
}

type updateStatusReq struct {
	OrderID   json.Number `json:"orderId"`
	NewStatus string      `json:"newStatus"`
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID.String() == "" || req.NewStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID and new status required."})
		return
	}

	orderID, err := req.OrderID.Int64()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID and new status required."})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.NewStatus); err != nil {
		log.Printf("[orders] failed to update order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ Order status updated successfully."})
}

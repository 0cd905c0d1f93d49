package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/submit-order", h.SubmitOrder)
	rg.POST("/submit-stationery-order", h.SubmitStationeryOrder)
	rg.POST("/confirm-payment", h.ConfirmPayment)
	rg.GET("/get-signed-url", h.GetSignedURL)
	rg.GET("/get-orders", h.GetOrders)
	rg.POST("/update-order-status", h.UpdateOrderStatus)
}

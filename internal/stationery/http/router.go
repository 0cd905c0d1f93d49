package http

import "github.com/gin-gonic/gin"

// Register mounts the public catalog read; admin mutations are mounted
// separately so the router can wrap them in the admin guard.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/stationery/products", h.ListProducts)
}

func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/stationery/add", h.AddProduct)
	rg.PUT("/stationery/update/:id", h.UpdateProduct)
	rg.DELETE("/stationery/delete/:id", h.DeleteProduct)
	rg.POST("/stationery/sku", h.SetSKU)
	rg.POST("/stationery/quantity", h.SetQuantity)
}

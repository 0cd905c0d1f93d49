package http

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mvps-print/printshop-backend/internal/stationery/service"
)

type Handler struct {
	products *service.ProductService
}

func New(products *service.ProductService) *Handler {
	return &Handler{products: products}
}

const maxProductImages = 5

func (h *Handler) readImages(c *gin.Context) ([]service.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // no multipart body, no images
	}
	files := form.File["images"]
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}
	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, service.ImageUpload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

func productInputFromForm(c *gin.Context) (service.ProductInput, bool) {
	name := c.PostForm("name")
	priceRaw := c.PostForm("price")
	if name == "" || priceRaw == "" {
		return service.ProductInput{}, false
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return service.ProductInput{}, false
	}
	discount, _ := strconv.ParseFloat(c.PostForm("discount"), 64)
	quantity, _ := strconv.Atoi(c.PostForm("quantity"))
	return service.ProductInput{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Discount:    discount,
		SKU:         c.PostForm("sku"),
		Quantity:    quantity,
	}, true
}

func (h *Handler) AddProduct(c *gin.Context) {
	in, ok := productInputFromForm(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and Price are required"})
		return
	}

	images, err := h.readImages(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.products.Add(c.Request.Context(), in, images); err != nil {
		log.Printf("[stationery] error adding product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added successfully"})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	in, ok := productInputFromForm(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and Price are required"})
		return
	}

	// "existing" is the client-resubmitted list of image URLs to keep.
	var keep []string
	if raw := c.PostForm("existing"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &keep); err != nil {
			keep = []string{raw}
		}
	}

	images, err := h.readImages(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.products.Update(c.Request.Context(), id, in, keep, images); err != nil {
		log.Printf("[stationery] error updating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[stationery] error deleting product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		log.Printf("[stationery] error fetching products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type setSKUReq struct {
	ID  int64  `json:"id"`
	SKU string `json:"sku"`
}

func (h *Handler) SetSKU(c *gin.Context) {
	var req setSKUReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.SKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product id and sku are required"})
		return
	}
	if err := h.products.SetSKU(c.Request.Context(), req.ID, req.SKU); err != nil {
		log.Printf("[stationery] error setting sku: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SKU updated successfully"})
}

type setQuantityReq struct {
	ID       int64 `json:"id"`
	Quantity *int  `json:"quantity"`
}

func (h *Handler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Quantity == nil || *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product id and quantity are required"})
		return
	}
	if err := h.products.SetQuantity(c.Request.Context(), req.ID, *req.Quantity); err != nil {
		log.Printf("[stationery] error setting quantity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated successfully"})
}

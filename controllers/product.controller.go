package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"shoplet-backend/models"
)

// uploadImage pushes a base64 payload to Cloudinary and fills the product's
// image fields. No-op when no image was sent or Cloudinary is not configured.
func (ctrl *Controller) uploadImage(p *models.Product) error {
	if p.ImageBase64 == "" || ctrl.Cld == nil {
		p.ImageBase64 = ""
		return nil
	}
	uploadResult, err := ctrl.Cld.Upload.Upload(
		context.Background(),
		p.ImageBase64,
		uploader.UploadParams{Folder: "shoplet/products"},
	)
	if err != nil {
		return err
	}
	p.ImageURL = uploadResult.SecureURL
	p.Image = uploadResult.PublicID
	p.ImageBase64 = ""
	return nil
}

// GetProducts returns the whole catalog.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productList, err := ctrl.Store.ListProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productList})
}

// CreateProduct adds a catalog record. Admin only.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Rating:      input.Rating,
		Description: input.Description,
		Image:       input.Image,
		ImageBase64: input.ImageBase64,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := ctrl.uploadImage(&product); err != nil {
		log.Println("Cloudinary upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := ctrl.Store.CreateProduct(ctx, &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProduct returns one product by its integer id.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := ctrl.Store.GetProduct(ctx, id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct replaces the mutable product fields. Admin only.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.Store.GetProduct(ctx, id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Price = input.Price
	product.Stock = input.Stock
	product.Rating = input.Rating
	product.Description = input.Description
	if input.Image != "" {
		product.Image = input.Image
	}
	product.ImageBase64 = input.ImageBase64
	product.UpdatedAt = time.Now()

	if err := ctrl.uploadImage(product); err != nil {
		log.Println("Cloudinary upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := ctrl.Store.UpdateProduct(ctx, product); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a product. Admin only.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := ctrl.Store.DeleteProduct(ctx, id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

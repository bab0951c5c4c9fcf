package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/service"
)

const (
	MsgFieldsRequired      = "All fields are required"
	MsgInvalidProductID    = "Invalid product id"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgProductDeleted      = "Product has been deleted"
	MsgInternalServerError = "Internal Server Error"
	MsgServerError         = "Server Error"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProductRequest represents the request body for creating a product.
// required rejects empty strings and a zero price.
type CreateProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
	Image string  `json:"image" binding:"required"`
}

// UpdateProductRequest represents the request body for updating a product.
// Absent fields are left unchanged; present fields are written without validation.
type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Image *string  `json:"image"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("create product rejected", slog.Any("err", err))
		fail(c, http.StatusBadRequest, MsgFieldsRequired)
		return
	}

	createdProduct, err := pc.productService.CreateProduct(c.Request.Context(), req.Name, req.Price, req.Image)
	if err != nil {
		slog.Error("Error in createProduct", slog.Any("err", err))
		fail(c, http.StatusInternalServerError, MsgInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": createdProduct})
}

// ListProducts handles the HTTP GET request for listing every product.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context())
	if err != nil {
		slog.Error("Error in getProducts", slog.Any("err", err))
		fail(c, http.StatusInternalServerError, MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// UpdateProduct handles the HTTP PUT request for updating a product by ID.
// An id that matches no product yields success with null data.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := model.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, MsgInvalidProductID)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Debug("update product rejected", slog.Any("err", err))
		fail(c, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}

	updatedProduct, err := pc.productService.UpdateProduct(c.Request.Context(), id, service.ProductUpdate{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		slog.Error("Error in updateProduct", slog.Any("err", err), slog.String("product_id", id.Hex()))
		fail(c, http.StatusInternalServerError, MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updatedProduct})
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := model.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, MsgInvalidProductID)
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		slog.Error("Error in deleteProduct", slog.Any("err", err), slog.String("product_id", id.Hex()))
		fail(c, http.StatusInternalServerError, MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": MsgProductDeleted})
}

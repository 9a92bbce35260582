package handler

import (
	"fmt"
	"net/http"

	model "auction-hub/internal/models"
	product "auction-hub/internal/productService"
	"auction-hub/services/auction/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type ProductServiceInterface interface {
	Create(in product.CreateProductInput) (model.Product, error)
	GetByID(productID string) (model.Product, error)
	List() ([]model.Product, error)
	Edit(productID, name, description string) error
	Delete(productID string) error
}

type ProductHandler struct {
	service ProductServiceInterface
}

func NewProductHandler(service ProductServiceInterface) *ProductHandler {
	return &ProductHandler{service: service}
}

// CreateProductHandler handles POST /products
func (h *ProductHandler) CreateProductHandler(c *gin.Context) {
	var req helpers.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateProductHandler", err)
		return
	}

	p, err := h.service.Create(product.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Pictures:    req.Pictures,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateProductHandler: failed to create product", map[string]any{
			"name":     req.Name,
			"owner_id": req.OwnerID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, p, "product created successfully")
	helpers.LogSuccess("CreateProductHandler", "product created successfully", map[string]any{
		"product_id": p.ProductID,
		"owner_id":   p.OwnerID,
	})
}

// GetProductHandler handles GET /products/:product_id
func (h *ProductHandler) GetProductHandler(c *gin.Context) {
	productID := c.Param("product_id")

	p, err := h.service.GetByID(productID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetProductHandler: error retrieving product", map[string]any{
			"product_id": productID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, p, "product retrieved successfully")
	helpers.LogSuccess("GetProductHandler", "product retrieved successfully", map[string]any{
		"product_id": productID,
	})
}

// ListProductsHandler handles GET /products
func (h *ProductHandler) ListProductsHandler(c *gin.Context) {
	products, err := h.service.List()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListProductsHandler: error listing products", map[string]any{"error": err.Error()})
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	utils.JSONResponse(c, http.StatusOK, products, "products retrieved successfully")
	helpers.LogSuccess("ListProductsHandler", "products retrieved successfully", map[string]any{
		"count": len(products),
	})
}

// EditProductHandler handles PUT /products/:product_id
func (h *ProductHandler) EditProductHandler(c *gin.Context) {
	productID := c.Param("product_id")

	var req helpers.EditProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EditProductHandler", err)
		return
	}

	if err := h.service.Edit(productID, req.Name, req.Description); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("EditProductHandler: failed to edit product", map[string]any{
			"product_id": productID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "product updated successfully")
	helpers.LogSuccess("EditProductHandler", "product updated successfully", map[string]any{
		"product_id": productID,
	})
}

// DeleteProductHandler handles DELETE /products/:product_id
func (h *ProductHandler) DeleteProductHandler(c *gin.Context) {
	productID := c.Param("product_id")

	if err := h.service.Delete(productID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteProductHandler: failed to delete product", map[string]any{
			"product_id": productID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "product deleted successfully")
	helpers.LogSuccess("DeleteProductHandler", "product deleted successfully", map[string]any{
		"product_id": productID,
	})
}

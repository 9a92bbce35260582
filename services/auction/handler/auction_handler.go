package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	auction "auction-hub/internal/auctionService"
	model "auction-hub/internal/models"
	"auction-hub/services/auction/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	Create(in auction.CreateAuctionInput) (model.Auction, error)
	Close(auctionID string, newEnd time.Time) error
	Delete(auctionID string) error
	List(ownerID string, page int, search string) ([]model.Auction, error)
	GetByID(auctionID string) (auction.AuctionDetails, error)
	GetByCategoryName(name string) ([]model.Auction, error)
	IndexList() ([]model.Auction, error)
	CreateCategory(name string) (model.Category, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.service.Create(auction.CreateAuctionInput{
		Description: req.Description,
		Price:       req.Price,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CategoryID:  req.CategoryID,
		ProductID:   req.ProductID,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler":     "CreateAuctionHandler",
			"product_id":  req.ProductID,
			"category_id": req.CategoryID,
			"error":       err.Error(),
		})
		return
	}

	resp := helpers.AuctionResponse{
		AuctionID:   a.AuctionID,
		Description: a.Description,
		Price:       a.Price,
		StartDate:   a.StartDate.UTC().Format(time.RFC3339),
		EndDate:     a.EndDate.UTC().Format(time.RFC3339),
		IsActive:    a.IsActive,
		CategoryID:  a.CategoryID,
		ProductID:   a.ProductID,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.AuctionID,
		"product_id": a.ProductID,
		"price":      a.Price,
	})
}

// CloseAuctionHandler handles PUT /auctions/:auction_id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.CloseAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CloseAuctionHandler", err)
		return
	}

	if err := h.service.Close(auctionID, req.EndDate); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseAuctionHandler: failed to close auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction closed successfully")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", map[string]any{
		"auction_id": auctionID,
	})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	if err := h.service.Delete(auctionID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteAuctionHandler: failed to delete auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{
		"auction_id": auctionID,
	})
}

// ListAuctionsHandler handles GET /auctions?owner_id=&page=&search=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", fmt.Errorf("invalid page: %w", err))
		return
	}
	ownerID := c.Query("owner_id")
	search := c.Query("search")

	auctions, err := h.service.List(ownerID, page, search)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionsHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"owner_id": ownerID,
		"page":     page,
		"count":    len(auctions),
	})
}

// GetAuctionDetailsHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionDetailsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	details, err := h.service.GetByID(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionDetailsHandler: error retrieving auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, details, "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionDetailsHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
	})
}

// GetByCategoryHandler handles GET /categories/:name/auctions
func (h *AuctionHandler) GetByCategoryHandler(c *gin.Context) {
	name := c.Param("name")

	auctions, err := h.service.GetByCategoryName(name)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetByCategoryHandler: error listing category auctions", map[string]any{
			"category": name,
			"error":    err.Error(),
		})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("GetByCategoryHandler", "auctions retrieved successfully", map[string]any{
		"category": name,
		"count":    len(auctions),
	})
}

// IndexAuctionsHandler handles GET /
func (h *AuctionHandler) IndexAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.IndexList()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("IndexAuctionsHandler: error building index listing", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("IndexAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(auctions),
	})
}

// CreateCategoryHandler handles POST /categories
func (h *AuctionHandler) CreateCategoryHandler(c *gin.Context) {
	var req helpers.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCategoryHandler", err)
		return
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateCategoryHandler: failed to create category", map[string]any{
			"name":  req.Name,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, category, "category created successfully")
	helpers.LogSuccess("CreateCategoryHandler", "category created successfully", map[string]any{
		"category_id": category.CategoryID,
		"name":        category.Name,
	})
}

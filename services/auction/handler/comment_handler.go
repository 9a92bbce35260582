package handler

import (
	"fmt"
	"net/http"
	"time"

	model "auction-hub/internal/models"
	"auction-hub/services/auction/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type CommentServiceInterface interface {
	Add(auctionID, authorID, content string, publishDate time.Time) (model.Comment, error)
	ListForAuction(auctionID string) ([]model.Comment, error)
}

type CommentHandler struct {
	service CommentServiceInterface
}

func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// AddCommentHandler handles POST /auctions/:auction_id/comments
func (h *CommentHandler) AddCommentHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	comment, err := h.service.Add(auctionID, req.AuthorID, req.Content, req.PublishDate)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AddCommentHandler: failed to add comment", map[string]any{
			"auction_id": auctionID,
			"author_id":  req.AuthorID,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.CommentResponse{
		CommentID:   comment.CommentID,
		AuctionID:   comment.AuctionID,
		AuthorID:    comment.AuthorID,
		Content:     comment.Content,
		PublishDate: comment.PublishDate.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.CommentID,
		"auction_id": comment.AuctionID,
	})
}

// GetCommentsHandler handles GET /auctions/:auction_id/comments
func (h *CommentHandler) GetCommentsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	comments, err := h.service.ListForAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetCommentsHandler: error retrieving comments", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	if comments == nil {
		comments = []model.Comment{}
	}

	utils.JSONResponse(c, http.StatusOK, comments, "comments retrieved successfully")
	helpers.LogSuccess("GetCommentsHandler", "comments retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(comments),
	})
}

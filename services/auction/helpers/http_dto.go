package helpers

import "time"

// Request DTOs
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	OwnerID     string   `json:"owner_id" binding:"required"`
	Pictures    []string `json:"pictures"`
}

type EditProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateAuctionRequest struct {
	Description string    `json:"description" binding:"required"`
	Price       float64   `json:"price" binding:"gte=0"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	CategoryID  string    `json:"category_id" binding:"required"`
	ProductID   string    `json:"product_id" binding:"required"`
}

type CloseAuctionRequest struct {
	EndDate time.Time `json:"end_date" binding:"required"`
}

type PlaceBidRequest struct {
	AuctionID string    `json:"auction_id" binding:"required"`
	BidderID  string    `json:"bidder_id" binding:"required"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
	PlacedAt  time.Time `json:"placed_at"`
}

type AddCommentRequest struct {
	AuthorID    string    `json:"author_id" binding:"required"`
	Content     string    `json:"content" binding:"required"`
	PublishDate time.Time `json:"publish_date"`
}

// Response DTOs
type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	BidderID  string  `json:"bidder_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type AuctionResponse struct {
	AuctionID   string  `json:"auction_id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	IsActive    bool    `json:"is_active"`
	CategoryID  string  `json:"category_id"`
	ProductID   string  `json:"product_id"`
}

type CommentResponse struct {
	CommentID   string `json:"comment_id"`
	AuctionID   string `json:"auction_id"`
	AuthorID    string `json:"author_id"`
	Content     string `json:"content"`
	PublishDate string `json:"publish_date"`
}

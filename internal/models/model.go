package models

import "time"

// User is an opaque identity owned by the external user directory. It is
// referenced by products, bids and comments but never stored here.
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Product is something a user puts up for auction. AuctionID is a non-owning
// back-reference to the at-most-one auction selling this product; empty means
// the product is not auctioned.
type Product struct {
	ProductID   string    `gorm:"primaryKey;column:product_id" json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `gorm:"column:owner_id;index" json:"owner_id"`
	AuctionID   string    `gorm:"column:auction_id" json:"auction_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category groups auctions. Its auction collection lives as an index in the
// store, not as an embedded slice.
type Category struct {
	CategoryID string    `gorm:"primaryKey;column:category_id" json:"category_id"`
	Name       string    `gorm:"index" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Auction runs over [StartDate, EndDate] on exactly one product. Price only
// moves up once bidding starts; LastBidderID tracks the bidder of the highest
// accepted bid and must never disagree with the recorded bids.
type Auction struct {
	AuctionID    string    `gorm:"primaryKey;column:auction_id" json:"auction_id"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	ProductID    string    `gorm:"column:product_id;index" json:"product_id"`
	CategoryID   string    `gorm:"column:category_id;index" json:"category_id"`
	LastBidderID string    `gorm:"column:last_bidder_id" json:"last_bidder_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Bid is an accepted offer on an auction. Amount strictly exceeded the
// auction's price at the moment it was applied.
type Bid struct {
	BidID     string    `gorm:"primaryKey;column:bid_id" json:"bid_id"`
	AuctionID string    `gorm:"column:auction_id;index" json:"auction_id"`
	BidderID  string    `gorm:"column:bidder_id" json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is an append-only remark attached to an auction. Never edited or
// removed once written.
type Comment struct {
	CommentID   string    `gorm:"primaryKey;column:comment_id" json:"comment_id"`
	AuctionID   string    `gorm:"column:auction_id;index" json:"auction_id"`
	AuthorID    string    `gorm:"column:author_id" json:"author_id"`
	Content     string    `json:"content"`
	PublishDate time.Time `json:"publish_date"`
}

package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
)

// business logic errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidWindow    = errors.New("auction end date must be after its start date")
	ErrAuctionExists    = errors.New("product already has an auction")
	ErrProductAuctioned = errors.New("product is attached to an auction")
	ErrAuctionInactive  = errors.New("auction is not active")
	ErrBidTooLow        = errors.New("bid amount does not exceed the current price")
	ErrSelfBid          = errors.New("bidder owns the auctioned product")
)

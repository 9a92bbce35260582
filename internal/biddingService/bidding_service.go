package bidding

import (
	"fmt"
	"time"

	"auction-hub/internal/auctionerrors"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo repository.AuctionDB
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
	}
}

// PlaceBid validates inputs and hands the bid to the store, which applies the
// compare-and-update atomically: the bid is appended and the auction's price
// and last bidder move together, or nothing happens. placedAt is the
// placement time the caller observed; zero means now.
func (s *BiddingService) PlaceBid(auctionID, bidderID string, amount float64, placedAt time.Time) (models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: placedAt.UTC(),
	}

	if err := s.repo.ApplyBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on auction %s by user %s: %w", auctionID, bidderID, err)
	}

	return bid, nil
}

// GetBidsForAuction returns the bid history of an auction in acceptance order
func (s *BiddingService) GetBidsForAuction(auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.repo.GetBidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return bids, nil
}

package auction

import (
	"errors"
	"fmt"
	"time"

	"auction-hub/internal/auctionerrors"
	"auction-hub/internal/directory"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"
	"auction-hub/utils"

	"github.com/go-playground/validator/v10"
)

const (
	// AuctionsToShow caps the landing-page listing
	AuctionsToShow = 10
	// PageSize is the fixed page length for filtered listings
	PageSize = 12
)

var validate = validator.New()

// AuctionService owns the auction lifecycle (create, close, delete) and the
// listing/detail queries. Link maintenance between auctions, products and
// categories is delegated to the store's atomic operations.
type AuctionService struct {
	repo  repository.AuctionDB
	users directory.UserDirectory
	pics  directory.PictureStore
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB, users directory.UserDirectory, pics directory.PictureStore) *AuctionService {
	return &AuctionService{
		repo:  repo,
		users: users,
		pics:  pics,
	}
}

// CreateAuctionInput carries the fields needed to open an auction
type CreateAuctionInput struct {
	Description string    `validate:"required"`
	Price       float64   `validate:"gte=0"`
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required"`
	CategoryID  string    `validate:"required"`
	ProductID   string    `validate:"required"`
}

// AuctionDetails is the full read model for one auction page. LastBidder is a
// display name resolved through the user directory; Pictures come from the
// picture store.
type AuctionDetails struct {
	AuctionID   string    `json:"auction_id"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CategoryName string   `json:"category_name"`
	ProductName string    `json:"product_name"`
	LastBidder  string    `json:"last_bidder,omitempty"`
	Pictures    []string  `json:"pictures"`
}

// Create opens an auction on a product within a category. The auction record,
// the category collection entry and the product back-reference are written as
// one atomic unit by the store.
func (s *AuctionService) Create(in CreateAuctionInput) (models.Auction, error) {
	if err := validate.Struct(in); err != nil {
		return models.Auction{}, fmt.Errorf("service: %w - %v", auctionerrors.ErrInvalidInput, err)
	}
	if !in.EndDate.After(in.StartDate) {
		return models.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidWindow)
	}

	a := models.Auction{
		AuctionID:   utils.GenerateID(),
		Description: in.Description,
		Price:       in.Price,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		IsActive:    true,
		CategoryID:  in.CategoryID,
		ProductID:   in.ProductID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateAuction(a); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for product %s: %w", in.ProductID, err)
	}

	return a, nil
}

// Close moves the auction's end date. Supplying an end date already in the
// past is a safe no-op: an auction can never be shortened retroactively.
func (s *AuctionService) Close(auctionID string, newEnd time.Time) error {
	if auctionID == "" {
		return fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	if _, err := s.repo.GetAuction(auctionID); err != nil {
		return fmt.Errorf("service: failed to close auction %s: %w", auctionID, err)
	}

	if newEnd.Before(time.Now().UTC()) {
		return nil
	}

	if err := s.repo.UpdateAuctionEnd(auctionID, newEnd.UTC()); err != nil {
		return fmt.Errorf("service: failed to close auction %s: %w", auctionID, err)
	}
	return nil
}

// Delete removes the auction together with its bids, detaching the product
// back-reference and the category entry in the same unit.
func (s *AuctionService) Delete(auctionID string) error {
	if auctionID == "" {
		return fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	if err := s.repo.DeleteAuction(auctionID); err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", auctionID, err)
	}
	return nil
}

// ExistsForProduct reports whether some auction references the given product
func (s *AuctionService) ExistsForProduct(productID string) (bool, error) {
	if productID == "" {
		return false, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrInvalidInput)
	}
	return s.repo.HasAuctionForProduct(productID)
}

// List returns one page of auctions. Owner and search filters compose with
// AND; pages are 1-based and a non-positive page means the first one.
func (s *AuctionService) List(ownerID string, page int, search string) ([]models.Auction, error) {
	if page < 1 {
		page = 1
	}

	auctions, err := s.repo.ListAuctions(repository.ListFilter{
		OwnerID: ownerID,
		Search:  search,
		Offset:  (page - 1) * PageSize,
		Limit:   PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// GetByID returns the full details for one auction
func (s *AuctionService) GetByID(auctionID string) (AuctionDetails, error) {
	if auctionID == "" {
		return AuctionDetails{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return AuctionDetails{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}

	details := AuctionDetails{
		AuctionID:   a.AuctionID,
		Description: a.Description,
		Price:       a.Price,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		IsActive:    a.IsActive,
		Pictures:    []string{},
	}

	if c, err := s.repo.GetCategory(a.CategoryID); err == nil {
		details.CategoryName = c.Name
	} else if !errors.Is(err, auctionerrors.ErrCategoryNotFound) {
		return AuctionDetails{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}

	p, err := s.repo.GetProduct(a.ProductID)
	if err != nil {
		return AuctionDetails{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	details.ProductName = p.Name
	details.Pictures = s.pics.PicturesFor(p.ProductID)

	if a.LastBidderID != "" {
		if name, err := s.users.DisplayName(a.LastBidderID); err == nil {
			details.LastBidder = name
		} else {
			// directory gap: fall back to the opaque id
			details.LastBidder = a.LastBidderID
		}
	}

	return details, nil
}

// GetByCategoryName returns all auctions in the exactly-named category
func (s *AuctionService) GetByCategoryName(name string) ([]models.Auction, error) {
	if name == "" {
		return nil, fmt.Errorf("service: %w - empty category name", auctionerrors.ErrInvalidInput)
	}

	auctions, err := s.repo.ListAuctionsByCategoryName(name)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions for category %q: %w", name, err)
	}
	return auctions, nil
}

// IndexList returns the landing-page slice of auctions, newest first
func (s *AuctionService) IndexList() ([]models.Auction, error) {
	auctions, err := s.repo.IndexAuctions(AuctionsToShow)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build index listing: %w", err)
	}
	return auctions, nil
}

// CreateCategory adds a category to the taxonomy auctions link into
func (s *AuctionService) CreateCategory(name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, fmt.Errorf("service: %w - empty category name", auctionerrors.ErrInvalidInput)
	}

	c := models.Category{
		CategoryID: utils.GenerateID(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateCategory(c); err != nil {
		return models.Category{}, fmt.Errorf("service: failed to create category %q: %w", name, err)
	}
	return c, nil
}

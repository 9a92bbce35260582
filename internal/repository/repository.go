package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"auction-hub/internal/auctionerrors"
	model "auction-hub/internal/models"
)

// ListFilter narrows and pages an auction listing. OwnerID and Search compose
// with logical AND; empty values mean "no filter". Offset/Limit of zero mean
// "from the start" and "no cap".
type ListFilter struct {
	OwnerID string
	Search  string
	Offset  int
	Limit   int
}

// AuctionDB defines the storage interface for the auction marketplace.
//
// CreateAuction, DeleteAuction and ApplyBid are atomic: either every write
// they imply (auction row, category index entry, product back-reference, bid
// history, price/last-bidder) lands, or none does. Listings come back in a
// deterministic order (CreatedAt descending, id ascending) so pagination is
// well-defined.
type AuctionDB interface {
	CreateProduct(p model.Product) error
	GetProduct(productID string) (model.Product, error)
	ListProducts() ([]model.Product, error)
	UpdateProduct(productID, name, description string) error
	DeleteProduct(productID string) error

	CreateCategory(c model.Category) error
	GetCategory(categoryID string) (model.Category, error)

	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	UpdateAuctionEnd(auctionID string, end time.Time) error
	DeleteAuction(auctionID string) error
	HasAuctionForProduct(productID string) (bool, error)
	ListAuctions(f ListFilter) ([]model.Auction, error)
	ListAuctionsByCategoryName(name string) ([]model.Auction, error)
	IndexAuctions(limit int) ([]model.Auction, error)

	ApplyBid(bid model.Bid) error
	GetBidsByAuction(auctionID string) ([]model.Bid, error)

	AddComment(c model.Comment) error
	GetCommentsByAuction(auctionID string) ([]model.Comment, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionDB.
// Entities live in map arenas keyed by id; the Product<->Auction and
// Category->Auctions links are id indexes, so deleting an auction is index
// removal under one lock rather than graph surgery.
type MemoryStore struct {
	mu               sync.RWMutex
	products         map[string]model.Product
	categories       map[string]model.Category
	auctions         map[string]model.Auction
	bids             map[string][]model.Bid     // key: auctionID -> bids in acceptance order
	comments         map[string][]model.Comment // key: auctionID -> comments in publish order
	productAuction   map[string]string          // key: productID -> auctionID back-reference
	categoryAuctions map[string][]string        // key: categoryID -> auctionIDs
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:         make(map[string]model.Product),
		categories:       make(map[string]model.Category),
		auctions:         make(map[string]model.Auction),
		bids:             make(map[string][]model.Bid),
		comments:         make(map[string][]model.Comment),
		productAuction:   make(map[string]string),
		categoryAuctions: make(map[string][]string),
	}
}

// CreateProduct stores a new product record
func (s *MemoryStore) CreateProduct(p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ProductID] = p
	return nil
}

// GetProduct returns the product with the given id
func (s *MemoryStore) GetProduct(productID string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	return p, nil
}

// ListProducts returns all products, newest first
func (s *MemoryStore) ListProducts() ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

// UpdateProduct changes a product's name and description
func (s *MemoryStore) UpdateProduct(productID, name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return fmt.Errorf("update product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	p.Name = name
	p.Description = description
	s.products[productID] = p
	return nil
}

// DeleteProduct removes a product. It refuses while an auction still
// references the product, so no auction is ever left dangling.
func (s *MemoryStore) DeleteProduct(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return fmt.Errorf("delete product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	if _, auctioned := s.productAuction[productID]; auctioned {
		return fmt.Errorf("delete product %s: %w", productID, auctionerrors.ErrProductAuctioned)
	}
	delete(s.products, productID)
	return nil
}

// CreateCategory stores a new category record
func (s *MemoryStore) CreateCategory(c model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.CategoryID] = c
	return nil
}

// GetCategory returns the category with the given id
func (s *MemoryStore) GetCategory(categoryID string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[categoryID]
	if !ok {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	return c, nil
}

// CreateAuction persists the auction and establishes both links (category
// collection entry, product back-reference) in one critical section. Fails
// without writing anything when the category or product is missing or the
// product already has an auction.
func (s *MemoryStore) CreateAuction(a model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[a.CategoryID]; !ok {
		return fmt.Errorf("create auction for category %s: %w", a.CategoryID, auctionerrors.ErrCategoryNotFound)
	}
	p, ok := s.products[a.ProductID]
	if !ok {
		return fmt.Errorf("create auction for product %s: %w", a.ProductID, auctionerrors.ErrProductNotFound)
	}
	if _, taken := s.productAuction[a.ProductID]; taken {
		return fmt.Errorf("create auction for product %s: %w", a.ProductID, auctionerrors.ErrAuctionExists)
	}

	s.auctions[a.AuctionID] = a
	s.categoryAuctions[a.CategoryID] = append(s.categoryAuctions[a.CategoryID], a.AuctionID)
	s.productAuction[a.ProductID] = a.AuctionID
	p.AuctionID = a.AuctionID
	s.products[a.ProductID] = p

	return nil
}

// GetAuction returns the auction with the given id
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// UpdateAuctionEnd moves an auction's end date
func (s *MemoryStore) UpdateAuctionEnd(auctionID string, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	a.EndDate = end
	s.auctions[auctionID] = a
	return nil
}

// DeleteAuction removes the auction, its bids, the category index entry and
// the product back-reference as one unit. A reader never observes a partial
// detachment.
func (s *MemoryStore) DeleteAuction(auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	delete(s.auctions, auctionID)
	delete(s.bids, auctionID)
	delete(s.comments, auctionID)
	delete(s.productAuction, a.ProductID)

	if p, ok := s.products[a.ProductID]; ok {
		p.AuctionID = ""
		s.products[a.ProductID] = p
	}

	ids := s.categoryAuctions[a.CategoryID]
	for i, id := range ids {
		if id == auctionID {
			s.categoryAuctions[a.CategoryID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	return nil
}

// HasAuctionForProduct reports whether some auction references the product
func (s *MemoryStore) HasAuctionForProduct(productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.productAuction[productID]
	return ok, nil
}

// ListAuctions returns auctions matching the filter in listing order
func (s *MemoryStore) ListAuctions(f ListFilter) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(f.Search)
	out := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		p := s.products[a.ProductID]
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, a)
	}
	sortAuctions(out)
	return pageOf(out, f.Offset, f.Limit), nil
}

// ListAuctionsByCategoryName returns all auctions in the exactly-named category
func (s *MemoryStore) ListAuctionsByCategoryName(name string) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var categoryID string
	for _, c := range s.categories {
		if c.Name == name {
			categoryID = c.CategoryID
			break
		}
	}
	if categoryID == "" {
		return nil, fmt.Errorf("list auctions for category %q: %w", name, auctionerrors.ErrCategoryNotFound)
	}

	ids := s.categoryAuctions[categoryID]
	out := make([]model.Auction, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.auctions[id]; ok {
			out = append(out, a)
		}
	}
	sortAuctions(out)
	return out, nil
}

// IndexAuctions returns up to limit auctions for the landing page, newest first
func (s *MemoryStore) IndexAuctions(limit int) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		out = append(out, a)
	}
	sortAuctions(out)
	return pageOf(out, 0, limit), nil
}

// ApplyBid validates the bid against the auction's current state and, when it
// passes, appends it and moves Price and LastBidderID, all inside a single
// critical section. Concurrent bidders on the same auction are serialized
// here, so Price always equals the highest recorded bid.
func (s *MemoryStore) ApplyBid(bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("apply bid to auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err := checkBid(a, s.products[a.ProductID].OwnerID, bid); err != nil {
		return err
	}

	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)
	a.Price = bid.Amount
	a.LastBidderID = bid.BidderID
	s.auctions[bid.AuctionID] = a

	return nil
}

// GetBidsByAuction returns the auction's bids in acceptance order
func (s *MemoryStore) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid(nil), s.bids[auctionID]...), nil
}

// AddComment appends a comment to an existing auction
func (s *MemoryStore) AddComment(c model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[c.AuctionID]; !ok {
		return fmt.Errorf("add comment to auction %s: %w", c.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	s.comments[c.AuctionID] = append(s.comments[c.AuctionID], c)
	return nil
}

// GetCommentsByAuction returns the auction's comments in publish order
func (s *MemoryStore) GetCommentsByAuction(auctionID string) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get comments for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.Comment(nil), s.comments[auctionID]...), nil
}

// checkBid enforces the bid acceptance rules against the auction state the
// caller read inside its critical section: the auction must be active and the
// bid timestamp inside its window, the bidder must not own the product, and
// the amount must strictly exceed the current price.
func checkBid(a model.Auction, ownerID string, bid model.Bid) error {
	if !a.IsActive || bid.CreatedAt.Before(a.StartDate) || bid.CreatedAt.After(a.EndDate) {
		return fmt.Errorf("apply bid to auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionInactive)
	}
	if ownerID != "" && ownerID == bid.BidderID {
		return fmt.Errorf("apply bid to auction %s: %w", a.AuctionID, auctionerrors.ErrSelfBid)
	}
	if bid.Amount <= a.Price {
		return fmt.Errorf("apply bid to auction %s: current price is %.2f: %w", a.AuctionID, a.Price, auctionerrors.ErrBidTooLow)
	}
	return nil
}

// sortAuctions orders newest-first with id as the tie-break, which keeps
// repeated listings stable for pagination.
func sortAuctions(auctions []model.Auction) {
	sort.Slice(auctions, func(i, j int) bool {
		if !auctions[i].CreatedAt.Equal(auctions[j].CreatedAt) {
			return auctions[i].CreatedAt.After(auctions[j].CreatedAt)
		}
		return auctions[i].AuctionID < auctions[j].AuctionID
	})
}

func pageOf(auctions []model.Auction, offset, limit int) []model.Auction {
	if offset >= len(auctions) {
		return []model.Auction{}
	}
	auctions = auctions[offset:]
	if limit > 0 && len(auctions) > limit {
		auctions = auctions[:limit]
	}
	return auctions
}

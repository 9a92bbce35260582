package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-hub/internal/auctionerrors"
	model "auction-hub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore is an AuctionDB backed by SQLite through gorm. Create, delete and
// bid application run inside gorm transactions, so the link invariants hold
// under crash or mid-sequence failure: the transaction commits fully or rolls
// back fully.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (creating if needed) the SQLite database at path and
// migrates the schema.
func NewGormStore(path string) (*GormStore, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := gdb.AutoMigrate(
		&model.Product{}, &model.Category{}, &model.Auction{},
		&model.Bid{}, &model.Comment{},
	); err != nil {
		return nil, fmt.Errorf("migrate database %s: %w", path, err)
	}
	return &GormStore{db: gdb}, nil
}

// CreateProduct stores a new product record
func (s *GormStore) CreateProduct(p model.Product) error {
	if err := s.db.Create(&p).Error; err != nil {
		return fmt.Errorf("create product %s: %w", p.ProductID, err)
	}
	return nil
}

// GetProduct returns the product with the given id
func (s *GormStore) GetProduct(productID string) (model.Product, error) {
	var p model.Product
	err := s.db.First(&p, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	return p, nil
}

// ListProducts returns all products, newest first
func (s *GormStore) ListProducts() ([]model.Product, error) {
	var out []model.Product
	if err := s.db.Order("created_at DESC, product_id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// UpdateProduct changes a product's name and description
func (s *GormStore) UpdateProduct(productID, name, description string) error {
	res := s.db.Model(&model.Product{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{"name": name, "description": description})
	if res.Error != nil {
		return fmt.Errorf("update product %s: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	return nil
}

// DeleteProduct removes a product unless an auction still references it
func (s *GormStore) DeleteProduct(productID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p model.Product
		err := tx.First(&p, "product_id = ?", productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete product %s: %w", productID, auctionerrors.ErrProductNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete product %s: %w", productID, err)
		}
		if p.AuctionID != "" {
			return fmt.Errorf("delete product %s: %w", productID, auctionerrors.ErrProductAuctioned)
		}
		return tx.Delete(&model.Product{}, "product_id = ?", productID).Error
	})
}

// CreateCategory stores a new category record
func (s *GormStore) CreateCategory(c model.Category) error {
	if err := s.db.Create(&c).Error; err != nil {
		return fmt.Errorf("create category %s: %w", c.CategoryID, err)
	}
	return nil
}

// GetCategory returns the category with the given id
func (s *GormStore) GetCategory(categoryID string) (model.Category, error) {
	var c model.Category
	err := s.db.First(&c, "category_id = ?", categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, err)
	}
	return c, nil
}

// CreateAuction persists the auction and the product back-reference in one
// transaction, after checking that category and product exist and the product
// is not already auctioned.
func (s *GormStore) CreateAuction(a model.Auction) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var c model.Category
		if err := tx.First(&c, "category_id = ?", a.CategoryID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("create auction for category %s: %w", a.CategoryID, auctionerrors.ErrCategoryNotFound)
		} else if err != nil {
			return err
		}

		var p model.Product
		if err := tx.First(&p, "product_id = ?", a.ProductID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("create auction for product %s: %w", a.ProductID, auctionerrors.ErrProductNotFound)
		} else if err != nil {
			return err
		}
		if p.AuctionID != "" {
			return fmt.Errorf("create auction for product %s: %w", a.ProductID, auctionerrors.ErrAuctionExists)
		}

		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		return tx.Model(&model.Product{}).
			Where("product_id = ?", a.ProductID).
			Update("auction_id", a.AuctionID).Error
	})
}

// GetAuction returns the auction with the given id
func (s *GormStore) GetAuction(auctionID string) (model.Auction, error) {
	var a model.Auction
	err := s.db.First(&a, "auction_id = ?", auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// UpdateAuctionEnd moves an auction's end date
func (s *GormStore) UpdateAuctionEnd(auctionID string, end time.Time) error {
	res := s.db.Model(&model.Auction{}).
		Where("auction_id = ?", auctionID).
		Update("end_date", end)
	if res.Error != nil {
		return fmt.Errorf("update auction %s: %w", auctionID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// DeleteAuction removes the auction, its bids and comments, and clears the
// product back-reference in one transaction.
func (s *GormStore) DeleteAuction(auctionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteAuctionTx(tx, auctionID)
	})
}

func (s *GormStore) deleteAuctionTx(tx *gorm.DB, auctionID string) error {
	var a model.Auction
	err := tx.First(&a, "auction_id = ?", auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", auctionID, err)
	}

	if err := tx.Model(&model.Product{}).
		Where("product_id = ?", a.ProductID).
		Update("auction_id", "").Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.Bid{}, "auction_id = ?", auctionID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.Comment{}, "auction_id = ?", auctionID).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Auction{}, "auction_id = ?", auctionID).Error
}

// HasAuctionForProduct reports whether some auction references the product
func (s *GormStore) HasAuctionForProduct(productID string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Auction{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check auction for product %s: %w", productID, err)
	}
	return count > 0, nil
}

// ListAuctions returns auctions matching the filter in listing order
func (s *GormStore) ListAuctions(f ListFilter) ([]model.Auction, error) {
	q := s.db.Model(&model.Auction{}).
		Joins("JOIN products ON products.product_id = auctions.product_id")
	if f.OwnerID != "" {
		q = q.Where("products.owner_id = ?", f.OwnerID)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", term, term)
	}
	q = q.Order("auctions.created_at DESC, auctions.auction_id ASC")
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []model.Auction
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return out, nil
}

// ListAuctionsByCategoryName returns all auctions in the exactly-named category
func (s *GormStore) ListAuctionsByCategoryName(name string) ([]model.Auction, error) {
	var c model.Category
	err := s.db.First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("list auctions for category %q: %w", name, auctionerrors.ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("list auctions for category %q: %w", name, err)
	}

	var out []model.Auction
	if err := s.db.Where("category_id = ?", c.CategoryID).
		Order("created_at DESC, auction_id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list auctions for category %q: %w", name, err)
	}
	return out, nil
}

// IndexAuctions returns up to limit auctions for the landing page, newest first
func (s *GormStore) IndexAuctions(limit int) ([]model.Auction, error) {
	var out []model.Auction
	q := s.db.Order("created_at DESC, auction_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("index auctions: %w", err)
	}
	return out, nil
}

// ApplyBid re-reads the auction inside the transaction, validates the bid
// against that state and applies the append plus the price/last-bidder update
// together. SQLite serializes writers, so two racing bids see each other's
// committed price.
func (s *GormStore) ApplyBid(bid model.Bid) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var a model.Auction
		err := tx.First(&a, "auction_id = ?", bid.AuctionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("apply bid to auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
		}
		if err != nil {
			return fmt.Errorf("apply bid to auction %s: %w", bid.AuctionID, err)
		}

		var p model.Product
		if err := tx.First(&p, "product_id = ?", a.ProductID).Error; err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("apply bid to auction %s: %w", bid.AuctionID, err)
		}
		if err := checkBid(a, p.OwnerID, bid); err != nil {
			return err
		}

		if err := tx.Create(&bid).Error; err != nil {
			return err
		}
		return tx.Model(&model.Auction{}).
			Where("auction_id = ?", bid.AuctionID).
			Updates(map[string]any{"price": bid.Amount, "last_bidder_id": bid.BidderID}).Error
	})
}

// GetBidsByAuction returns the auction's bids in acceptance order
func (s *GormStore) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	if _, err := s.GetAuction(auctionID); err != nil {
		return nil, err
	}
	var out []model.Bid
	if err := s.db.Where("auction_id = ?", auctionID).
		Order("created_at ASC, bid_id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
	}
	return out, nil
}

// AddComment appends a comment to an existing auction
func (s *GormStore) AddComment(c model.Comment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var a model.Auction
		err := tx.First(&a, "auction_id = ?", c.AuctionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("add comment to auction %s: %w", c.AuctionID, auctionerrors.ErrAuctionNotFound)
		}
		if err != nil {
			return fmt.Errorf("add comment to auction %s: %w", c.AuctionID, err)
		}
		return tx.Create(&c).Error
	})
}

// GetCommentsByAuction returns the auction's comments in publish order
func (s *GormStore) GetCommentsByAuction(auctionID string) ([]model.Comment, error) {
	if _, err := s.GetAuction(auctionID); err != nil {
		return nil, err
	}
	var out []model.Comment
	if err := s.db.Where("auction_id = ?", auctionID).
		Order("publish_date ASC, comment_id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("get comments for auction %s: %w", auctionID, err)
	}
	return out, nil
}

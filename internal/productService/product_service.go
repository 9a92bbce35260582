package product

import (
	"fmt"
	"time"

	"auction-hub/internal/auctionerrors"
	"auction-hub/internal/directory"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"
	"auction-hub/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProductService manages the products users put up for auction. Pictures are
// kept by the external picture store, referenced by product id.
type ProductService struct {
	repo repository.AuctionDB
	pics directory.PictureStore
}

// NewProductService creates a new ProductService instance
func NewProductService(repo repository.AuctionDB, pics directory.PictureStore) *ProductService {
	return &ProductService{
		repo: repo,
		pics: pics,
	}
}

// CreateProductInput carries the fields needed to register a product
type CreateProductInput struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	OwnerID     string `validate:"required"`
	Pictures    []string
}

// Create registers a product and attaches its picture references
func (s *ProductService) Create(in CreateProductInput) (models.Product, error) {
	if err := validate.Struct(in); err != nil {
		return models.Product{}, fmt.Errorf("service: %w - %v", auctionerrors.ErrInvalidInput, err)
	}

	p := models.Product{
		ProductID:   utils.GenerateID(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateProduct(p); err != nil {
		return models.Product{}, fmt.Errorf("service: failed to create product %q: %w", in.Name, err)
	}
	if len(in.Pictures) > 0 {
		s.pics.Attach(p.ProductID, in.Pictures...)
	}

	return p, nil
}

// GetByID returns the product with the given id
func (s *ProductService) GetByID(productID string) (models.Product, error) {
	if productID == "" {
		return models.Product{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrInvalidInput)
	}

	p, err := s.repo.GetProduct(productID)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to get product %s: %w", productID, err)
	}
	return p, nil
}

// List returns all products, newest first
func (s *ProductService) List() ([]models.Product, error) {
	products, err := s.repo.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

// Edit changes a product's name and description
func (s *ProductService) Edit(productID, name, description string) error {
	if productID == "" || name == "" {
		return fmt.Errorf("service: %w - missing productID or name", auctionerrors.ErrInvalidInput)
	}

	if err := s.repo.UpdateProduct(productID, name, description); err != nil {
		return fmt.Errorf("service: failed to edit product %s: %w", productID, err)
	}
	return nil
}

// Delete removes a product and drops its picture references. The store
// refuses while an auction still references the product.
func (s *ProductService) Delete(productID string) error {
	if productID == "" {
		return fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrInvalidInput)
	}

	if err := s.repo.DeleteProduct(productID); err != nil {
		return fmt.Errorf("service: failed to delete product %s: %w", productID, err)
	}
	s.pics.Detach(productID)
	return nil
}

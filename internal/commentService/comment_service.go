package comment

import (
	"fmt"
	"time"

	"auction-hub/internal/auctionerrors"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// CommentService is the append-only comment log attached to auctions. There
// is no edit or delete.
type CommentService struct {
	repo repository.AuctionDB
}

// NewCommentService creates a new CommentService instance
func NewCommentService(repo repository.AuctionDB) *CommentService {
	return &CommentService{
		repo: repo,
	}
}

// Add appends an immutable comment to an existing auction. A zero publishDate
// means now.
func (s *CommentService) Add(auctionID, authorID, content string, publishDate time.Time) (models.Comment, error) {
	if auctionID == "" || authorID == "" {
		return models.Comment{}, fmt.Errorf("service: %w - missing auctionID or authorID", auctionerrors.ErrInvalidInput)
	}
	if content == "" {
		return models.Comment{}, fmt.Errorf("service: %w - empty comment content", auctionerrors.ErrInvalidInput)
	}
	if publishDate.IsZero() {
		publishDate = time.Now().UTC()
	}

	c := models.Comment{
		CommentID:   utils.GenerateID(),
		AuctionID:   auctionID,
		AuthorID:    authorID,
		Content:     content,
		PublishDate: publishDate.UTC(),
	}

	if err := s.repo.AddComment(c); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to add comment to auction %s: %w", auctionID, err)
	}

	return c, nil
}

// ListForAuction returns the auction's comments in publish order
func (s *CommentService) ListForAuction(auctionID string) ([]models.Comment, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	comments, err := s.repo.GetCommentsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get comments for auction %s: %w", auctionID, err)
	}

	return comments, nil
}

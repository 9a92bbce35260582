package comment

import (
	"errors"
	"testing"
	"time"

	"auction-hub/internal/auctionerrors"
	model "auction-hub/internal/models"
	"auction-hub/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Tests Add
func TestCommentService_Add(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name          string
		auctionID     string
		authorID      string
		content       string
		publishDate   time.Time
		mockSetup     func(m *repository.MockAuctionDB)
		expectError   bool
		expectedError error
	}{
		{
			name:        "valid_comment",
			auctionID:   "auction1",
			authorID:    "user1",
			content:     "is shipping included?",
			publishDate: now,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().AddComment(gomock.Any()).Return(nil)
			},
			expectError: false,
		},
		{
			name:          "empty_auctionID",
			authorID:      "user1",
			content:       "hello",
			publishDate:   now,
			mockSetup:     func(m *repository.MockAuctionDB) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "empty_authorID",
			auctionID:     "auction1",
			content:       "hello",
			publishDate:   now,
			mockSetup:     func(m *repository.MockAuctionDB) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "empty_content",
			auctionID:     "auction1",
			authorID:      "user1",
			publishDate:   now,
			mockSetup:     func(m *repository.MockAuctionDB) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:        "auction_not_found",
			auctionID:   "nope",
			authorID:    "user1",
			content:     "hello",
			publishDate: now,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().AddComment(gomock.Any()).Return(auctionerrors.ErrAuctionNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrAuctionNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository.NewMockAuctionDB(ctrl)
			service := NewCommentService(mockRepo)
			tc.mockSetup(mockRepo)

			c, err := service.Add(tc.auctionID, tc.authorID, tc.content, tc.publishDate)

			if tc.expectError {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				}
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, c.CommentID)
				_, parseErr := uuid.Parse(c.CommentID)
				require.NoError(t, parseErr, "CommentID should be a valid UUID")
				require.Equal(t, tc.auctionID, c.AuctionID)
				require.Equal(t, tc.authorID, c.AuthorID)
				require.Equal(t, tc.content, c.Content)
				require.Equal(t, tc.publishDate, c.PublishDate)
			}
		})
	}
}

// A zero publish date defaults to the current clock.
func TestCommentService_Add_DefaultsPublishDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewCommentService(mockRepo)

	var recorded model.Comment
	mockRepo.EXPECT().AddComment(gomock.Any()).DoAndReturn(func(c model.Comment) error {
		recorded = c
		return nil
	})

	_, err := service.Add("auction1", "user1", "hello", time.Time{})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), recorded.PublishDate, 2*time.Second)
}

// Tests ListForAuction
func TestCommentService_ListForAuction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewCommentService(mockRepo)

	now := time.Now().UTC()

	t.Run("auction_with_comments", func(t *testing.T) {
		expected := []model.Comment{
			{CommentID: "c1", AuctionID: "auction1", AuthorID: "user1", Content: "first", PublishDate: now},
			{CommentID: "c2", AuctionID: "auction1", AuthorID: "user2", Content: "second", PublishDate: now.Add(time.Minute)},
		}
		mockRepo.EXPECT().GetCommentsByAuction("auction1").Return(expected, nil)

		got, err := service.ListForAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, expected, got)
	})

	t.Run("empty_auctionID", func(t *testing.T) {
		_, err := service.ListForAuction("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
	})

	t.Run("auction_not_found", func(t *testing.T) {
		mockRepo.EXPECT().GetCommentsByAuction("nope").Return(nil, auctionerrors.ErrAuctionNotFound)

		_, err := service.ListForAuction("nope")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})
}

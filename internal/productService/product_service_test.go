package product

import (
	"errors"
	"testing"
	"time"

	"auction-hub/internal/auctionerrors"
	"auction-hub/internal/directory"
	model "auction-hub/internal/models"
	"auction-hub/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Tests Create
func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateProductInput
		mockSetup     func(m *repository.MockAuctionDB)
		expectError   bool
		expectedError error
	}{
		{
			name: "valid_product",
			input: CreateProductInput{
				Name:        "Phone",
				Description: "lightly used",
				OwnerID:     "user1",
				Pictures:    []string{"front.jpg", "back.jpg"},
			},
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().CreateProduct(gomock.Any()).Return(nil)
			},
			expectError: false,
		},
		{
			name: "valid_without_pictures",
			input: CreateProductInput{
				Name:        "Desk",
				Description: "oak",
				OwnerID:     "user2",
			},
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().CreateProduct(gomock.Any()).Return(nil)
			},
			expectError: false,
		},
		{
			name: "missing_name",
			input: CreateProductInput{
				Description: "lightly used",
				OwnerID:     "user1",
			},
			mockSetup:     func(m *repository.MockAuctionDB) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name: "missing_owner",
			input: CreateProductInput{
				Name:        "Phone",
				Description: "lightly used",
			},
			mockSetup:     func(m *repository.MockAuctionDB) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name: "repo_fails",
			input: CreateProductInput{
				Name:        "Phone",
				Description: "lightly used",
				OwnerID:     "user1",
			},
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().CreateProduct(gomock.Any()).Return(errors.New("store write failed"))
			},
			expectError: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository.NewMockAuctionDB(ctrl)
			pics := directory.NewMemoryPictureStore()
			service := NewProductService(mockRepo, pics)
			tc.mockSetup(mockRepo)

			p, err := service.Create(tc.input)

			if tc.expectError {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				}
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, p.ProductID)
				_, parseErr := uuid.Parse(p.ProductID)
				require.NoError(t, parseErr, "ProductID should be a valid UUID")
				require.Equal(t, tc.input.Name, p.Name)
				require.Equal(t, tc.input.OwnerID, p.OwnerID)
				require.Empty(t, p.AuctionID)
				require.WithinDuration(t, time.Now().UTC(), p.CreatedAt, 2*time.Second)
				require.Equal(t, tc.input.Pictures, func() []string {
					refs := pics.PicturesFor(p.ProductID)
					if len(refs) == 0 {
						return nil
					}
					return refs
				}())
			}
		})
	}
}

// Tests GetByID and List
func TestProductService_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewProductService(mockRepo, directory.NewMemoryPictureStore())

	t.Run("get_ok", func(t *testing.T) {
		expected := model.Product{ProductID: "product1", Name: "Phone", OwnerID: "user1"}
		mockRepo.EXPECT().GetProduct("product1").Return(expected, nil)

		got, err := service.GetByID("product1")
		require.NoError(t, err)
		require.Equal(t, expected, got)
	})

	t.Run("get_missing", func(t *testing.T) {
		mockRepo.EXPECT().GetProduct("nope").Return(model.Product{}, auctionerrors.ErrProductNotFound)

		_, err := service.GetByID("nope")
		require.ErrorIs(t, err, auctionerrors.ErrProductNotFound)
	})

	t.Run("get_empty_id", func(t *testing.T) {
		_, err := service.GetByID("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
	})

	t.Run("list", func(t *testing.T) {
		expected := []model.Product{{ProductID: "product1"}, {ProductID: "product2"}}
		mockRepo.EXPECT().ListProducts().Return(expected, nil)

		got, err := service.List()
		require.NoError(t, err)
		require.Equal(t, expected, got)
	})
}

// Tests Edit
func TestProductService_Edit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewProductService(mockRepo, directory.NewMemoryPictureStore())

	t.Run("edit_ok", func(t *testing.T) {
		mockRepo.EXPECT().UpdateProduct("product1", "Phone v2", "like new").Return(nil)
		require.NoError(t, service.Edit("product1", "Phone v2", "like new"))
	})

	t.Run("edit_missing", func(t *testing.T) {
		mockRepo.EXPECT().UpdateProduct("nope", "Phone", "desc").Return(auctionerrors.ErrProductNotFound)
		require.ErrorIs(t, service.Edit("nope", "Phone", "desc"), auctionerrors.ErrProductNotFound)
	})

	t.Run("edit_empty_name", func(t *testing.T) {
		require.ErrorIs(t, service.Edit("product1", "", "desc"), auctionerrors.ErrInvalidInput)
	})
}

// Tests Delete
func TestProductService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	pics := directory.NewMemoryPictureStore()
	service := NewProductService(mockRepo, pics)

	t.Run("delete_drops_pictures", func(t *testing.T) {
		pics.Attach("product1", "front.jpg")
		mockRepo.EXPECT().DeleteProduct("product1").Return(nil)

		require.NoError(t, service.Delete("product1"))
		require.Empty(t, pics.PicturesFor("product1"))
	})

	t.Run("delete_refused_while_auctioned", func(t *testing.T) {
		pics.Attach("product2", "desk.jpg")
		mockRepo.EXPECT().DeleteProduct("product2").Return(auctionerrors.ErrProductAuctioned)

		require.ErrorIs(t, service.Delete("product2"), auctionerrors.ErrProductAuctioned)
		// pictures survive a refused delete
		require.Equal(t, []string{"desk.jpg"}, pics.PicturesFor("product2"))
	})

	t.Run("delete_empty_id", func(t *testing.T) {
		require.ErrorIs(t, service.Delete(""), auctionerrors.ErrInvalidInput)
	})
}

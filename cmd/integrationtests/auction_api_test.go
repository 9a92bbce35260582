package integrationtests

import (
	"net/http"
	"testing"
	"time"

	"auction-hub/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func createProduct(t *testing.T, router *gin.Engine, owner, name string) string {
	t.Helper()

	data, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/products", helpers.CreateProductRequest{
		Name:        name,
		Description: "integration test product",
		OwnerID:     owner,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return data["product_id"].(string)
}

func createCategory(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()

	data, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/categories", helpers.CreateCategoryRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code)
	return data["category_id"].(string)
}

func openAuction(t *testing.T, router *gin.Engine, productID, categoryID string, price float64) string {
	t.Helper()

	now := time.Now().UTC()
	data, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", helpers.CreateAuctionRequest{
		Description: "integration test auction",
		Price:       price,
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(24 * time.Hour),
		CategoryID:  categoryID,
		ProductID:   productID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return data["auction_id"].(string)
}

func getAuctionDetails(t *testing.T, router *gin.Engine, auctionID string) map[string]any {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return resp["data"].(map[string]any)
}

// Full bidding flow: open an auction at 100, reject a low bid, accept a
// higher one, reject the owner bidding on their own product.
func TestBiddingFlow(t *testing.T) {
	router, _ := SetupTestRouter()

	productID := createProduct(t, router, "alice", "Phone")
	categoryID := createCategory(t, router, "Electronics")
	auctionID := openAuction(t, router, productID, categoryID, 100)

	// below the current price
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  "bob",
		Amount:    90,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "bid amount too low")

	// equal to the current price is still too low
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  "bob",
		Amount:    100,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "bid amount too low")

	// strictly above wins
	data, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  "bob",
		Amount:    150,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 150.0, data["amount"])

	details := getAuctionDetails(t, router, auctionID)
	require.Equal(t, 150.0, details["price"])
	require.Equal(t, "Bob", details["last_bidder"])

	// owner cannot outbid on their own product
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  "alice",
		Amount:    200,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "owner cannot bid on own product")

	// exactly one accepted bid in the history
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)
}

// Deleting an auction removes it with its bids and frees the product for a
// new auction.
func TestDeleteAuctionDetaches(t *testing.T) {
	router, _ := SetupTestRouter()

	productID := createProduct(t, router, "alice", "Desk")
	categoryID := createCategory(t, router, "Furniture")
	auctionID := openAuction(t, router, productID, categoryID, 50)

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", helpers.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  "bob",
		Amount:    80,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// the product cannot be auctioned twice
	now := time.Now().UTC()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", helpers.CreateAuctionRequest{
		Description: "second auction",
		Price:       60,
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
		CategoryID:  categoryID,
		ProductID:   productID,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "product already has an auction")

	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, resp["message"], "auction deleted successfully")

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/bids", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// the product is free again
	openAuction(t, router, productID, categoryID, 60)
}

// Closing with a past end date is a no-op; the stored end date survives.
func TestCloseAuction(t *testing.T) {
	router, _ := SetupTestRouter()

	productID := createProduct(t, router, "alice", "Lamp")
	categoryID := createCategory(t, router, "Furniture")
	auctionID := openAuction(t, router, productID, categoryID, 20)

	before := getAuctionDetails(t, router, auctionID)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPut, "/auctions/"+auctionID+"/close", helpers.CloseAuctionRequest{
		EndDate: time.Now().UTC().Add(-48 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, resp["message"], "auction closed successfully")

	after := getAuctionDetails(t, router, auctionID)
	require.Equal(t, before["end_date"], after["end_date"])

	// a future end date does move
	newEnd := time.Now().UTC().Add(72 * time.Hour)
	_, w = ExecuteRequestAndParse(t, router, http.MethodPut, "/auctions/"+auctionID+"/close", helpers.CloseAuctionRequest{
		EndDate: newEnd,
	})
	require.Equal(t, http.StatusOK, w.Code)

	moved := getAuctionDetails(t, router, auctionID)
	require.NotEqual(t, before["end_date"], moved["end_date"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodPut, "/auctions/missing/close", helpers.CloseAuctionRequest{
		EndDate: newEnd,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Owner and search filters compose, and the category listing finds auctions
// through the category name.
func TestListingFilters(t *testing.T) {
	router, _ := SetupTestRouter()

	electronics := createCategory(t, router, "Electronics")
	furniture := createCategory(t, router, "Furniture")

	phone := createProduct(t, router, "alice", "Phone X")
	lamp := createProduct(t, router, "alice", "Desk Lamp")
	phoneCase := createProduct(t, router, "bob", "Phone Case")

	openAuction(t, router, phone, electronics, 100)
	openAuction(t, router, lamp, furniture, 30)
	openAuction(t, router, phoneCase, electronics, 10)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 3)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions?owner_id=alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions?search=phone", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions?owner_id=alice&search=phone", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 0)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/categories/Electronics/auctions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/categories/Garden/auctions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 0)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 3)
}

// Comments append and list in publish order; the log survives nothing, it is
// removed with the auction.
func TestCommentFlow(t *testing.T) {
	router, _ := SetupTestRouter()

	productID := createProduct(t, router, "alice", "Bike")
	categoryID := createCategory(t, router, "Sport")
	auctionID := openAuction(t, router, productID, categoryID, 200)

	data, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/comments", helpers.AddCommentRequest{
		AuthorID: "bob",
		Content:  "any damage?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "any damage?", data["content"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/comments", helpers.AddCommentRequest{
		AuthorID: "alice",
		Content:  "none, barely ridden",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := resp["data"].([]any)
	require.Len(t, comments, 2)
	first := comments[0].(map[string]any)
	require.Equal(t, "any damage?", first["content"])

	// unknown auction refuses comments
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/missing/comments", helpers.AddCommentRequest{
		AuthorID: "bob",
		Content:  "hello",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/comments", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Product edit and the delete guard while an auction references the product.
func TestProductLifecycle(t *testing.T) {
	router, _ := SetupTestRouter()

	productID := createProduct(t, router, "alice", "Tent")

	_, w := ExecuteRequestAndParse(t, router, http.MethodPut, "/products/"+productID, helpers.EditProductRequest{
		Name:        "Tent XL",
		Description: "sleeps four",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/products/"+productID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Tent XL", resp["data"].(map[string]any)["name"])

	categoryID := createCategory(t, router, "Outdoor")
	auctionID := openAuction(t, router, productID, categoryID, 120)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/products/"+productID, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "product is attached to an auction")

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/products/"+productID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/products/"+productID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

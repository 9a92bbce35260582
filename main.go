package main

import (
	"fmt"
	"os"
	"time"

	auction "auction-hub/internal/auctionService"
	bidding "auction-hub/internal/biddingService"
	comment "auction-hub/internal/commentService"
	"auction-hub/internal/directory"
	model "auction-hub/internal/models"
	product "auction-hub/internal/productService"
	"auction-hub/internal/repository"
	"auction-hub/internal/server"
	"auction-hub/utils"

	"github.com/joho/godotenv"
)

func main() {

	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		utils.Info("no .env file found, using process environment", nil)
	}

	repo, err := buildStore()
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"error": err.Error()})
	}

	users := directory.NewStaticDirectory()
	pics := directory.NewMemoryPictureStore()

	if os.Getenv("STORE") != "sqlite" {
		seedStore(repo, users)
	}

	auctionSvc := auction.NewAuctionService(repo, users, pics)
	biddingSvc := bidding.NewBiddingService(repo)
	commentSvc := comment.NewCommentService(repo)
	productSvc := product.NewProductService(repo, pics)

	router := server.SetupRouter(auctionSvc, biddingSvc, commentSvc, productSvc)

	port := getPort()
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildStore selects the storage backend from the STORE env var:
// "sqlite" opens the gorm store at DB_PATH, anything else is in-memory.
func buildStore() (repository.AuctionDB, error) {
	if os.Getenv("STORE") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "auctionhub.db"
		}
		return repository.NewGormStore(path)
	}
	return repository.NewMemoryStore(), nil
}

// seedStore adds sample users, categories and products to the in-memory store
func seedStore(repo repository.AuctionDB, users *directory.StaticDirectory) {
	users.Register("user1", "Alice")
	users.Register("user2", "Bob")

	now := time.Now().UTC()

	categories := []model.Category{
		{CategoryID: "cat1", Name: "Electronics", CreatedAt: now},
		{CategoryID: "cat2", Name: "Furniture", CreatedAt: now},
	}
	for _, c := range categories {
		if err := repo.CreateCategory(c); err != nil {
			utils.Warn("failed to seed category", map[string]any{"category_id": c.CategoryID, "error": err.Error()})
		}
	}

	products := []model.Product{
		{ProductID: "product1", Name: "Phone", Description: "Lightly used phone", OwnerID: "user1", CreatedAt: now},
		{ProductID: "product2", Name: "Desk", Description: "Oak writing desk", OwnerID: "user2", CreatedAt: now},
	}
	for _, p := range products {
		if err := repo.CreateProduct(p); err != nil {
			utils.Warn("failed to seed product", map[string]any{"product_id": p.ProductID, "error": err.Error()})
		}
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}

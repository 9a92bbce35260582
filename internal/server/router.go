package server

import (
	auction "auction-hub/internal/auctionService"
	bidding "auction-hub/internal/biddingService"
	comment "auction-hub/internal/commentService"
	product "auction-hub/internal/productService"
	handler "auction-hub/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	auctionService *auction.AuctionService,
	biddingService *bidding.BiddingService,
	commentService *comment.CommentService,
	productService *product.ProductService,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)
	biddingHandler := handler.NewBiddingHandler(biddingService)
	commentHandler := handler.NewCommentHandler(commentService)
	productHandler := handler.NewProductHandler(productService)

	// landing page slice
	router.GET("/", auctionHandler.IndexAuctionsHandler)

	products := router.Group("/products")
	{
		products.POST("", productHandler.CreateProductHandler)
		products.GET("", productHandler.ListProductsHandler)
		products.GET("/:product_id", productHandler.GetProductHandler)
		products.PUT("/:product_id", productHandler.EditProductHandler)
		products.DELETE("/:product_id", productHandler.DeleteProductHandler)
	}

	categories := router.Group("/categories")
	{
		categories.POST("", auctionHandler.CreateCategoryHandler)
		categories.GET("/:name/auctions", auctionHandler.GetByCategoryHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionDetailsHandler)
		auctions.PUT("/:auction_id/close", auctionHandler.CloseAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.DeleteAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.POST("/:auction_id/comments", commentHandler.AddCommentHandler)
		auctions.GET("/:auction_id/comments", commentHandler.GetCommentsHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.PlaceBidHandler)
	}

	return router
}

package main

import (
	"log"

	"github.com/Aashish23092/ledger-extraction/client"
	"github.com/Aashish23092/ledger-extraction/config"
	"github.com/Aashish23092/ledger-extraction/handler"
	"github.com/Aashish23092/ledger-extraction/service"
	"github.com/Aashish23092/ledger-extraction/utils/ledger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	keywords, err := ledger.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		log.Fatalf("Failed to load ledger keywords: %v", err)
	}

	// Initialize PDF processor
	tableClient := client.NewTableClient(cfg.TableMinConfidence)
	pdfProcessor := service.NewPDFProcessor(tableClient)

	// Initialize service layer
	extractionService := service.NewExtractionService(
		pdfProcessor,
		service.NewSpreadsheetLoader(),
		ledger.NewClassifier(keywords),
	)

	// Initialize handler layer
	extractionHandler := handler.NewExtractionHandler(extractionService, service.NewExportService())

	// Setup Gin router
	router := gin.Default()
	router.Use(handler.RequestID())
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Ledger Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1", handler.MaxUploadSize(cfg.MaxFileSize))
	{
		api.POST("/statements/extract", extractionHandler.ExtractStatement)
		api.POST("/invoices/extract", extractionHandler.ExtractInvoice)
		api.POST("/pila/extract", extractionHandler.ExtractPila)
	}

	// Start server
	log.Printf("Starting Ledger Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

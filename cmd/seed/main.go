// Command seed bulk-loads the starter catalog into the document store.
package main

import (
	"context"
	"fmt"
	"os"

	"freshfood/internal/config"
	"freshfood/internal/database"
	"freshfood/internal/logger"
	"freshfood/internal/repository"
	"freshfood/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func seedProducts() []service.CreateProductInput {
	return []service.CreateProductInput{
		{
			Name:        "Unripe Plantain",
			Slug:        "unripe-plantain",
			Description: "Green plantain bunch, perfect for boiling, frying or porridge.",
			Category:    "Fruits & Vegetables",
			Images:      []string{"/images/products/unripe-plantain.jpg"},
			Variants: []service.VariantInput{
				{Name: "Small Bunch", Price: 7000, Stock: 25, Weight: "3kg"},
				{Name: "Large Bunch", Price: 12000, Stock: 15, Weight: "6kg"},
			},
			Features: []string{"Farm fresh", "Sourced locally"},
			Featured: true,
		},
		{
			Name:        "Farm Fresh Eggs",
			Slug:        "farm-fresh-eggs",
			Description: "Crate of large eggs from free-range birds.",
			Category:    "Protein",
			Images:      []string{"/images/products/farm-fresh-eggs.jpg"},
			Variants: []service.VariantInput{
				{Name: "Crate of 30", Price: 7000, Stock: 40},
			},
			Features: []string{"Free range", "Collected daily"},
		},
		{
			Name:        "Pure Palm Oil",
			Slug:        "pure-palm-oil",
			Description: "Undiluted red palm oil, bottled at source.",
			Category:    "Provisions",
			Images:      []string{"/images/products/pure-palm-oil.jpg"},
			Variants: []service.VariantInput{
				{Name: "1 Litre", Price: 1500, Stock: 60, Weight: "1kg"},
				{Name: "5 Litres", Price: 6800, Stock: 20, Weight: "5kg"},
			},
			Features: []string{"No additives"},
		},
		{
			Name:        "Premium Garri",
			Slug:        "premium-garri",
			Description: "Fine-grain white garri, well dried and sieved.",
			Category:    "Staples",
			Images:      []string{"/images/products/premium-garri.jpg"},
			Variants: []service.VariantInput{
				{Name: "2kg Bag", Price: 2500, Stock: 50, Weight: "2kg"},
				{Name: "10kg Bag", Price: 11000, Stock: 8, Weight: "10kg"},
			},
			Features: []string{"Stone free"},
		},
		{
			Name:        "Local Rice",
			Slug:        "local-rice",
			Description: "Parboiled local rice, de-stoned and bagged.",
			Category:    "Staples",
			Images:      []string{"/images/products/local-rice.jpg"},
			Variants: []service.VariantInput{
				{Name: "5kg Bag", Price: 4500, Stock: 30, Weight: "5kg"},
				{Name: "25kg Bag", Price: 21000, Stock: 5, Weight: "25kg"},
			},
			Features: []string{"De-stoned", "Parboiled"},
			Featured: true,
		},
		{
			Name:        "Live Chicken",
			Slug:        "live-chicken",
			Description: "Healthy broiler chicken, sold live.",
			Category:    "Protein",
			Images:      []string{"/images/products/live-chicken.jpg"},
			Variants: []service.VariantInput{
				{Name: "Medium", Price: 15000, Stock: 12, Weight: "2.5kg"},
				{Name: "Large", Price: 18000, Stock: 6, Weight: "3.5kg"},
			},
			Features: []string{"Farm raised"},
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.Load()
	log := logger.NewWithDefaults()
	defer log.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close(ctx)

	productService := service.NewProductService(repository.NewProductRepository(db.DB()))

	succeeded, failed := 0, 0
	for _, input := range seedProducts() {
		product, err := productService.Create(ctx, input, "seed")
		if err != nil {
			log.Error("Failed to seed product", zap.String("name", input.Name), zap.Error(err))
			failed++
			continue
		}
		log.Info("Seeded product",
			zap.String("product_id", product.ID),
			zap.String("name", product.Name),
			zap.Int("variants", len(product.Variants)),
		)
		succeeded++
	}

	log.Info("Seed complete", zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

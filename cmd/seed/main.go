package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ikkim/backoffice-backend/config"
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an XLSX file. Expected columns:
//
//	0 product name | 1 description | 2 category | 3 variant sku
//	4 variant name | 5 price | 6 sale price | 7 stock | 8 track stock
//
// Rows sharing a product name become variants of one product.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	variantCount := 0
	for _, p := range products {
		variantCount += len(p.Variants)
	}
	fmt.Printf("Total products to import: %d (%d variants)\n", len(products), variantCount)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readCatalogFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	productIndex := make(map[string]int) // product name -> index in products
	seenSKUs := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 6 {
			skippedCount++
			continue
		}

		productName := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		category := strings.ToLower(strings.TrimSpace(row[2]))
		sku := strings.TrimSpace(row[3])
		variantName := strings.TrimSpace(row[4])
		priceStr := strings.TrimSpace(row[5])

		if productName == "" || sku == "" || priceStr == "" {
			skippedCount++
			continue
		}

		// SKUs must be unique across the whole catalog.
		if seenSKUs[sku] {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		var salePrice *float64
		if len(row) > 6 {
			if s := strings.TrimSpace(row[6]); s != "" {
				sp, err := strconv.ParseFloat(s, 64)
				// A sale price at or above the regular price is meaningless.
				if err == nil && sp >= 0 && sp < price {
					salePrice = &sp
				}
			}
		}

		stock := 0
		if len(row) > 7 {
			if s := strings.TrimSpace(row[7]); s != "" {
				if v, err := strconv.Atoi(s); err == nil && v >= 0 {
					stock = v
				}
			}
		}

		trackStock := true
		if len(row) > 8 {
			switch strings.ToLower(strings.TrimSpace(row[8])) {
			case "no", "false", "0":
				trackStock = false
			}
		}

		seenSKUs[sku] = true

		variant := model.Variant{
			SKU:        sku,
			Name:       variantName,
			Price:      price,
			SalePrice:  salePrice,
			Stock:      stock,
			TrackStock: trackStock,
		}

		idx, exists := productIndex[productName]
		if !exists {
			products = append(products, model.Product{
				Name:        productName,
				Description: description,
				Category:    parseCategory(category),
				IsActive:    true,
			})
			idx = len(products) - 1
			productIndex[productName] = idx
		}
		variant.SortOrder = len(products[idx].Variants)
		products[idx].Variants = append(products[idx].Variants, variant)

		if (i % 1000) == 0 {
			fmt.Printf("Processed %d rows...\n", i)
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

func parseCategory(raw string) model.ProductCategory {
	switch model.ProductCategory(raw) {
	case model.CategoryApparel, model.CategoryAccessories, model.CategoryHome, model.CategoryFood:
		return model.ProductCategory(raw)
	default:
		return model.CategoryOther
	}
}

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gemstone-shop/gemstone/internal/ai"
	"github.com/gemstone-shop/gemstone/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const aiCategorySystemMessage = "You are an AI assistant specialized in international precious metals trading. Your task is to generate relevant product categories for a business in this industry."

const aiCategoryPrompt = `Consider the following context:

Segment: International trade of precious metals, gold in particular.
Operations: Logistics, purchasing and import of gold worldwide, with a focus on Dubai.

Based on this, return 4 product categories relevant to this kind of business. Answer in JSON with exactly this structure:

{
  "categories": ["category_1", "category_2", "category_3", "category_4"]
}

Do not include explanations or any text outside the JSON.`

const aiProductSystemMessage = "You are an AI assistant specialized in international precious metals trading. Your task is to generate realistic products for each category in this industry."

// GenerateCategories asks the model for new categories and inserts the
// ones that do not exist yet.
func (s *Seeder) GenerateCategories(ctx context.Context) error {
	if !s.ai.Enabled() {
		return ai.ErrDisabled
	}
	if !s.Confirm("This will generate new product categories using AI. Proceed?") {
		s.Printf("operation cancelled")
		return nil
	}

	s.Printf("sending prompt to AI service...")
	content, err := s.ai.Complete(ctx, aiCategorySystemMessage, aiCategoryPrompt)
	if err != nil {
		return fmt.Errorf("ai request failed: %w", err)
	}

	var payload struct {
		Categories []string `json:"categories"`
	}
	raw := ai.ExtractJSON(content)
	if raw == "" || json.Unmarshal([]byte(raw), &payload) != nil {
		s.Printf("failed to parse JSON from AI response: %s", content)
		return nil
	}
	if len(payload.Categories) == 0 {
		s.Printf("no categories found in AI response")
		return nil
	}
	s.Printf("AI generated %d categories: %s", len(payload.Categories), strings.Join(payload.Categories, ", "))

	if !s.Confirm("Add these categories to the database?") {
		s.Printf("operation cancelled")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range payload.Categories {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var count int64
			if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				s.Printf("category %s already exists, skipping", name)
				continue
			}
			category := models.Category{
				Name:        name,
				Slug:        models.Slugify(name),
				Description: fmt.Sprintf("AI-generated category for %s in precious metals trading.", name),
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			s.Printf("created category: %s", category.Name)
		}
		return nil
	})
}

type aiProduct struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	PriceDiscount *decimal.Decimal `json:"price_discount"`
	Stock         int              `json:"stock"`
	Available     *bool            `json:"available"`
	Featured      bool             `json:"featured"`
}

// GenerateProducts asks the model for products per existing category.
// A bad response skips that category rather than aborting the batch.
func (s *Seeder) GenerateProducts(ctx context.Context) error {
	if !s.ai.Enabled() {
		return ai.ErrDisabled
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return err
	}
	if len(categories) == 0 {
		s.Printf("no categories found, create categories first")
		return nil
	}
	if !s.Confirm("This will generate new products for each category using AI. Proceed?") {
		s.Printf("operation cancelled")
		return nil
	}
	s.Printf("found %d categories", len(categories))

	for _, category := range categories {
		s.Printf("processing category: %s", category.Name)

		content, err := s.ai.Complete(ctx, aiProductSystemMessage, buildProductPrompt(category))
		if err != nil {
			s.Printf("AI request failed for category %s: %v", category.Name, err)
			continue
		}

		var payload map[string][]aiProduct
		raw := ai.ExtractJSON(content)
		if raw == "" || json.Unmarshal([]byte(raw), &payload) != nil {
			s.Printf("failed to parse JSON from AI response for category %s: %s", category.Name, content)
			continue
		}
		items, ok := payload[category.Slug]
		if !ok || len(items) == 0 {
			s.Printf("no products found in AI response for category %s", category.Name)
			continue
		}
		s.Printf("AI generated %d products for category %s", len(items), category.Name)
		for i, item := range items {
			s.Printf("  product %d: %s", i+1, item.Name)
		}

		if !s.Confirm(fmt.Sprintf("Add these products to the category %q?", category.Name)) {
			s.Printf("skipping products for category %s", category.Name)
			continue
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			for _, item := range items {
				if err := s.createAIProduct(tx, category, item); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		s.Printf("product generation for category %s completed", category.Name)
	}
	s.Printf("AI product generation completed")
	return nil
}

func (s *Seeder) createAIProduct(tx *gorm.DB, category models.Category, item aiProduct) error {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		s.Printf("product name is missing, skipping")
		return nil
	}
	if item.Price == nil {
		s.Printf("product %s has no price, skipping", name)
		return nil
	}

	var count int64
	if err := tx.Model(&models.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.Printf("product %s already exists, skipping", name)
		return nil
	}
	slug := models.Slugify(name)
	if err := tx.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.Printf("product slug %s already exists, skipping", slug)
		return nil
	}

	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Slug:        slug,
		Description: item.Description,
		Price:       models.NewMoneyFromDecimal(*item.Price),
		Stock:       item.Stock,
		Available:   true,
		Featured:    item.Featured,
	}
	if item.Available != nil {
		product.Available = *item.Available
	}
	if item.PriceDiscount != nil {
		discount := models.NewMoneyFromDecimal(*item.PriceDiscount)
		product.PriceDiscount = &discount
	}
	if err := tx.Create(&product).Error; err != nil {
		return err
	}
	s.Printf("created product: %s (slug: %s)", product.Name, product.Slug)
	return nil
}

func buildProductPrompt(category models.Category) string {
	description := category.Description
	if strings.TrimSpace(description) == "" {
		description = "N/A"
	}
	return fmt.Sprintf(`Consider the following context:

Segment: International trade of precious metals, gold in particular.
Operations: Logistics, purchasing and import of gold worldwide, with a focus on Dubai.
Product category: %s
Category description: %s

Based on this, create 4 products for this category. Answer in JSON with exactly this structure:

{
  "%s": [
    {
      "name": "Product name 1",
      "description": "Detailed description of product 1",
      "price": 1000.00,
      "price_discount": 900.00,
      "stock": 50,
      "available": true,
      "featured": true
    },
    {
      "name": "Product name 2",
      "description": "Detailed description of product 2",
      "price": 2000.00,
      "price_discount": null,
      "stock": 30,
      "available": true,
      "featured": false
    },
    ...
  ]
}

Do not include explanations or any text outside the JSON. Prices must be realistic for the kind of product.`, category.Name, description, category.Slug)
}

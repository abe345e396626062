package fakers

import (
	"math/rand"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// CatalogCategories is the fixed storefront taxonomy.
func CatalogCategories() []models.Category {
	return []models.Category{
		{Name: "Apparel", Slug: "apparel"},
		{Name: "Accessories", Slug: "accessories"},
		{Name: "Home", Slug: "home"},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// CatalogProducts returns the fixed demo catalog keyed by category slug.
func CatalogProducts() map[string][]models.Product {
	return map[string][]models.Product{
		"apparel": {
			{
				Name:                  "Classic Cotton Tee",
				Description:           "Heavyweight cotton tee with a relaxed fit.",
				Price:                 price("24.99"),
				OriginalPrice:         pricePtr("29.99"),
				Stock:                 25,
				Sizes:                 []string{"S", "M", "L", "XL"},
				Colors:                []string{"Black", "White", "Navy"},
				EstimatedDeliveryDays: 3,
			},
			{
				Name:                  "Everyday Hoodie",
				Description:           "Brushed fleece hoodie.",
				Price:                 price("59.00"),
				Stock:                 12,
				Sizes:                 []string{"S", "M", "L"},
				Colors:                []string{"Grey", "Black"},
				EstimatedDeliveryDays: 4,
				FreeShipping:          true,
			},
			{
				Name:                  "Selvedge Denim Jacket",
				Description:           "Limited run, raw selvedge denim.",
				Price:                 price("148.00"),
				Stock:                 3,
				Sizes:                 []string{"M", "L"},
				Colors:                []string{"Indigo"},
				EstimatedDeliveryDays: 7,
				FreeShipping:          true,
				IsLimitedEdition:      true,
			},
		},
		"accessories": {
			{
				Name:                  "Canvas Tote",
				Description:           "Sturdy tote for groceries and books.",
				Price:                 price("18.50"),
				Stock:                 40,
				Colors:                []string{"Natural", "Black"},
				EstimatedDeliveryDays: 2,
			},
			{
				Name:                  "Wool Beanie",
				Price:                 price("22.00"),
				OriginalPrice:         pricePtr("26.00"),
				Stock:                 15,
				Colors:                []string{"Mustard", "Charcoal"},
				EstimatedDeliveryDays: 3,
			},
		},
		"home": {
			{
				Name:                  "Stoneware Mug",
				Description:           "Hand glazed, 350 ml.",
				Price:                 price("12.50"),
				Stock:                 60,
				EstimatedDeliveryDays: 2,
			},
		},
	}
}

// ProductFaker builds a random product in category.
func ProductFaker(category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()
	sizes := [][]string{nil, {"S", "M", "L"}, {"One Size"}}
	colors := [][]string{nil, {"Black"}, {"Red", "Blue", "Green"}}

	return &models.Product{
		Name:                  name,
		Slug:                  slug.Make(name + "-" + faker.UUIDDigit()[:6]),
		Description:           faker.Sentence(),
		CategoryID:            category.ID,
		Price:                 decimal.NewFromFloat(fakePrice()).Round(2),
		Stock:                 rand.Intn(20) + 1,
		Sizes:                 sizes[rand.Intn(len(sizes))],
		Colors:                colors[rand.Intn(len(colors))],
		EstimatedDeliveryDays: rand.Intn(7) + 1,
		FreeShipping:          rand.Intn(4) == 0,
		IsLimitedEdition:      rand.Intn(10) == 0,
	}
}

func fakePrice() float64 {
	return 5 + rand.Float64()*195
}

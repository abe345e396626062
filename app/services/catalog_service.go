package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-cart/app/helpers"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateProductInput struct {
	Name                  string   `json:"name" validate:"required,max=255"`
	Description           string   `json:"description"`
	CategorySlug          string   `json:"category_slug"`
	Price                 string   `json:"price" validate:"required,numeric"`
	OriginalPrice         string   `json:"original_price" validate:"omitempty,numeric"`
	Stock                 int      `json:"stock" validate:"min=0"`
	Sizes                 []string `json:"sizes"`
	Colors                []string `json:"colors"`
	EstimatedDeliveryDays int      `json:"estimated_delivery_days" validate:"min=0"`
	FreeShipping          bool     `json:"free_shipping"`
	IsLimitedEdition      bool     `json:"is_limited_edition"`
	ImageURL              string   `json:"image_url" validate:"omitempty,url"`
}

// CatalogService loads catalog data into a session store, toggling the
// loading flags around each call the way the storefront expects.
type CatalogService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	logger       *zap.Logger
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// FetchProducts lists the catalog, narrowed to a category when slug is set.
func (s *CatalogService) FetchProducts(ctx context.Context, st *store.Store, categorySlug string) ([]models.Product, error) {
	st.Dispatch(store.ProductsRequested{})

	var (
		products []models.Product
		err      error
	)
	if categorySlug != "" {
		products, err = s.productRepo.GetByCategorySlug(ctx, categorySlug)
	} else {
		products, err = s.productRepo.GetProducts(ctx)
	}
	if err != nil {
		s.logger.Error("failed to fetch products", zap.String("category", categorySlug), zap.Error(err))
		st.Dispatch(store.ProductsFailed{Err: "Failed to load products"})
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	st.Dispatch(store.ProductsLoaded{Products: products})
	return products, nil
}

func (s *CatalogService) FetchProduct(ctx context.Context, st *store.Store, id string) (*models.Product, error) {
	st.Dispatch(store.ProductsRequested{})

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		st.Dispatch(store.ProductsFailed{Err: "Product not found"})
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("failed to fetch product", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	st.Dispatch(store.ProductLoaded{Product: *product})
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, st *store.Store, input CreateProductInput) (*models.Product, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: invalid price %q", ErrInvalidProduct, input.Price)
	}

	product := &models.Product{
		Name:                  input.Name,
		Slug:                  helpers.GenerateSlug(input.Name),
		Description:           input.Description,
		Price:                 price,
		Stock:                 input.Stock,
		Sizes:                 input.Sizes,
		Colors:                input.Colors,
		EstimatedDeliveryDays: input.EstimatedDeliveryDays,
		FreeShipping:          input.FreeShipping,
		IsLimitedEdition:      input.IsLimitedEdition,
		ImageURL:              input.ImageURL,
	}
	if input.OriginalPrice != "" {
		original, err := decimal.NewFromString(input.OriginalPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid original price %q", ErrInvalidProduct, input.OriginalPrice)
		}
		product.OriginalPrice = &original
	}
	if input.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, input.CategorySlug)
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q: %w", ErrInvalidProduct, input.CategorySlug, err)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load category %q: %w", input.CategorySlug, err)
		}
		product.CategoryID = category.ID
		product.Category = category
	}

	st.Dispatch(store.ProductsRequested{})
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.String("name", input.Name), zap.Error(err))
		st.Dispatch(store.ProductsFailed{Err: "Failed to create product"})
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	st.Dispatch(store.ProductCreated{Product: *product})

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	return product, nil
}

func (s *CatalogService) FetchCategories(ctx context.Context, st *store.Store) ([]models.Category, error) {
	st.Dispatch(store.CategoriesRequested{})

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch categories", zap.Error(err))
		st.Dispatch(store.CategoriesFailed{Err: "Failed to load categories"})
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	st.Dispatch(store.CategoriesLoaded{Categories: categories})
	return categories, nil
}

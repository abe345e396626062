package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-cart/app/db/fakers"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
	FakeProducts  int
	FakeUsers     int
}

// Seeder fills a catalog through the repository interfaces, so it works the
// same against memory and MySQL.
type Seeder struct {
	Products   repositories.ProductRepositoryImpl
	Categories repositories.CategoryRepositoryImpl
	Users      repositories.UserRepositoryImpl
	Logger     *zap.Logger
}

// DBSeed is idempotent for the fixed catalog: categories and products whose
// slug already exists are skipped.
func (s Seeder) DBSeed(ctx context.Context, opts Options) error {
	categories := make(map[string]*models.Category)
	for _, c := range fakers.CatalogCategories() {
		c := c
		existing, err := s.Categories.GetBySlug(ctx, c.Slug)
		switch {
		case err == nil:
			categories[c.Slug] = existing
			continue
		case !errors.Is(err, repositories.ErrRecordNotFound):
			return fmt.Errorf("failed to look up category %s: %w", c.Slug, err)
		}
		if err := s.Categories.Create(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
		}
		categories[c.Slug] = &c
	}

	existing, err := s.Products.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Slug] = true
	}

	created := 0
	for categorySlug, products := range fakers.CatalogProducts() {
		category := categories[categorySlug]
		for _, p := range products {
			p := p
			p.Slug = slug.Make(p.Name)
			if seen[p.Slug] {
				continue
			}
			p.CategoryID = category.ID
			if err := s.Products.Create(ctx, &p); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.Slug, err)
			}
			created++
		}
	}

	all := make([]*models.Category, 0, len(categories))
	for _, c := range categories {
		all = append(all, c)
	}
	for i := 0; i < opts.FakeProducts; i++ {
		p := fakers.ProductFaker(all[i%len(all)])
		if err := s.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed fake product: %w", err)
		}
		created++
	}

	if err := s.seedUsers(ctx, opts); err != nil {
		return err
	}

	s.Logger.Info("seed complete",
		zap.Int("categories", len(categories)),
		zap.Int("products_created", created))
	return nil
}

func (s Seeder) seedUsers(ctx context.Context, opts Options) error {
	if opts.AdminEmail != "" {
		_, err := s.Users.FindByEmail(ctx, opts.AdminEmail)
		switch {
		case errors.Is(err, repositories.ErrRecordNotFound):
			admin, err := fakers.AdminUser(opts.AdminEmail, opts.AdminPassword)
			if err != nil {
				return err
			}
			if err := s.Users.Create(ctx, admin); err != nil {
				return fmt.Errorf("failed to seed admin: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up admin: %w", err)
		}
	}

	for i := 0; i < opts.FakeUsers; i++ {
		u, err := fakers.UserFaker()
		if err != nil {
			return err
		}
		if err := s.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	return nil
}

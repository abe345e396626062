package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	catalog *repositories.MemoryCatalog
	st      *store.Store
	promos  *PromoService
	tee     models.Product
	mug     models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	catalog := repositories.NewMemoryCatalog(0)

	apparel := models.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, catalog.Categories().Create(ctx, &apparel))
	home := models.Category{Name: "Home", Slug: "home"}
	require.NoError(t, catalog.Categories().Create(ctx, &home))

	tee := models.Product{
		Name:       "Classic Tee",
		Slug:       "classic-tee",
		CategoryID: apparel.ID,
		Price:      decimal.RequireFromString("25.00"),
		Stock:      5,
		Sizes:      []string{"S", "M", "L"},
		Colors:     []string{"Black", "White"},
	}
	require.NoError(t, catalog.Products().Create(ctx, &tee))
	mug := models.Product{
		Name:       "Mug",
		Slug:       "mug",
		CategoryID: home.ID,
		Price:      decimal.RequireFromString("12.50"),
		Stock:      10,
	}
	require.NoError(t, catalog.Products().Create(ctx, &mug))

	promos, err := NewPromoService(DefaultPromoCodes(), zap.NewNop())
	require.NoError(t, err)

	return &fixture{
		catalog: catalog,
		st:      store.New(calc.NewCalculator(calc.DefaultConfig()), zap.NewNop(), store.WithPromoCheck(promos.Eligible)),
		promos:  promos,
		tee:     tee,
		mug:     mug,
	}
}

func (f *fixture) cartService(t *testing.T) *CartService {
	t.Helper()
	return NewCartService(f.catalog.Products(), f.promos, zap.NewNop())
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Equal(t, want, got.StringFixed(2), field)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-cart/app/configs"
	"github.com/Rakhulsr/go-cart/app/db/seeders"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the data providers and services shared by the commands.
type application struct {
	env        configs.ENV
	logger     *zap.Logger
	db         *gorm.DB
	calculator *calc.Calculator

	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	users      repositories.UserRepositoryImpl
	orders     repositories.OrderRepository

	promoSvc    *services.PromoService
	cartSvc     *services.CartService
	catalogSvc  *services.CatalogService
	authSvc     *services.AuthService
	checkoutSvc *services.CheckoutService
}

func newApplication(env configs.ENV, logger *zap.Logger) (*application, error) {
	a := &application{
		env:        env,
		logger:     logger,
		calculator: newCalculator(env, logger),
	}

	switch env.CatalogSource {
	case configs.CatalogMySQL:
		db, err := configs.OpenConnection(env, logger)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.products = repositories.NewProductRepository(db)
		a.categories = repositories.NewCategoryRepository(db)
		a.users = repositories.NewUserRepository(db)
		a.orders = repositories.NewOrderRepository(db)
	case configs.CatalogMemory:
		catalog := repositories.NewMemoryCatalog(env.MockDelay)
		a.products = catalog.Products()
		a.categories = catalog.Categories()
		a.users = repositories.NewMemoryUserRepository()
		a.orders = repositories.NewMemoryOrderRepository()
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", env.CatalogSource)
	}

	promoSvc, err := newPromoService(logger)
	if err != nil {
		return nil, err
	}
	a.promoSvc = promoSvc

	var gateway services.PaymentGateway = services.RedirectGateway{BaseURL: env.APP_URL}
	if env.HasMidtrans() {
		client := configs.NewMidtransSnapClient(env)
		gateway = services.NewMidtransGateway(&client, env.APP_URL)
	} else {
		logger.Warn("MIDTRANS_SERVER_KEY not set, checkout redirects straight to the finish page")
	}

	a.cartSvc = services.NewCartService(a.products, promoSvc, logger)
	a.catalogSvc = services.NewCatalogService(a.products, a.categories, logger)
	a.authSvc = services.NewAuthService(a.users, logger)
	a.checkoutSvc = services.NewCheckoutService(a.orders, gateway, logger)
	return a, nil
}

func (a *application) seeder() seeders.Seeder {
	return seeders.Seeder{
		Products:   a.products,
		Categories: a.categories,
		Users:      a.users,
		Logger:     a.logger,
	}
}

func (a *application) seed(ctx context.Context, fakeProducts, fakeUsers int) error {
	return a.seeder().DBSeed(ctx, seeders.Options{
		AdminEmail:    a.env.AdminEmail,
		AdminPassword: a.env.AdminPassword,
		FakeProducts:  fakeProducts,
		FakeUsers:     fakeUsers,
	})
}

func (a *application) close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

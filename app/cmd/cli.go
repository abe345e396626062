package cmd

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-cart/app/configs"
	"github.com/Rakhulsr/go-cart/app/models/migrations"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// RunCli runs the command named in args; without one it serves HTTP.
func RunCli(ctx context.Context, args []string, env configs.ENV, logger *zap.Logger) error {
	cmd := &cli.Command{
		Name:  "go-cart",
		Usage: "Shopping cart service",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, logger)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					logger.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the catalog, the admin account and optional fake data",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "fake-products", Usage: "number of random products to add"},
					&cli.IntFlag{Name: "fake-users", Usage: "number of random customers to add"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if env.CatalogSource != configs.CatalogMySQL {
						return fmt.Errorf("seed needs CATALOG_SOURCE=%s; the memory catalog is seeded on serve", configs.CatalogMySQL)
					}
					app, err := newApplication(env, logger)
					if err != nil {
						return err
					}
					defer app.close()
					return app.seed(ctx, int(c.Int("fake-products")), int(c.Int("fake-users")))
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "also write the keys to this file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateSessionKeys(c.Root().Writer, c.String("out")); err != nil {
						return err
					}
					logger.Info("key generation complete, copy the keys to your .env file")
					return nil
				},
			},
			{
				Name:  "quote",
				Usage: "Price a cart file and print the order summary",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "cart JSON file; items without max_stock are not stock-limited", Required: true},
					&cli.StringFlag{Name: "promo", Aliases: []string{"p"}, Usage: "promo code to apply"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					items, err := readQuoteFile(c.String("file"))
					if err != nil {
						return err
					}
					promoSvc, err := newPromoService(logger)
					if err != nil {
						return err
					}
					return quote(c.Root().Writer, newCalculator(env, logger), promoSvc, items, c.String("promo"))
				},
			},
		},
	}

	return cmd.Run(ctx, args)
}

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-cart/app/configs"
	"github.com/Rakhulsr/go-cart/app/routes"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/renderer"
	"github.com/Rakhulsr/go-cart/app/utils/sessions"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// sweepInterval checks for idle session stores often enough that none
// outlives idle by more than a fraction of it.
func sweepInterval(idle time.Duration) time.Duration {
	return max(min(idle/4, 10*time.Minute), time.Second)
}

func serve(ctx context.Context, env configs.ENV, logger *zap.Logger) error {
	app, err := newApplication(env, logger)
	if err != nil {
		return err
	}
	defer app.close()

	if env.CatalogSource == configs.CatalogMemory {
		if err := app.seed(ctx, 0, 0); err != nil {
			return err
		}
	}

	keys, ephemeral, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}
	if ephemeral {
		logger.Warn("APP_AUTH_KEY/APP_ENC_KEY not set, using ephemeral session keys")
	}
	csrfKey, err := keys.CSRFKey()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := store.NewRegistry(app.calculator, logger, store.WithPromoCheck(app.promoSvc.Eligible))
	if env.SessionIdle > 0 {
		go registry.RunSweeper(ctx, sweepInterval(env.SessionIdle), env.SessionIdle)
	}

	rnd := renderer.New(env.IsProduction())
	router := routes.NewRouter(routes.Deps{
		Render:      rnd,
		Logger:      logger,
		Sessions:    sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey),
		Registry:    registry,
		CartSvc:     app.cartSvc,
		CatalogSvc:  app.catalogSvc,
		AuthSvc:     app.authSvc,
		CheckoutSvc: app.checkoutSvc,
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.Protect(router, csrfKey, env.IsProduction(), rnd),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", env.APP_ENV),
			zap.String("catalog", env.CatalogSource))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

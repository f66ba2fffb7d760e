package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/forcedowels/storefront/internal/auth"
	checkoutapp "github.com/forcedowels/storefront/internal/checkout/app"
	checkoutdomain "github.com/forcedowels/storefront/internal/checkout/domain"
	stripeinfra "github.com/forcedowels/storefront/internal/checkout/infra/stripe"
	distributionapp "github.com/forcedowels/storefront/internal/distribution/app"
	distributionmemory "github.com/forcedowels/storefront/internal/distribution/infra/memory"
	distributionpg "github.com/forcedowels/storefront/internal/distribution/infra/postgres"
	"github.com/forcedowels/storefront/internal/httpapi"
	"github.com/forcedowels/storefront/internal/notify"
	notifyresend "github.com/forcedowels/storefront/internal/notify/resend"
	orderapp "github.com/forcedowels/storefront/internal/order/app"
	ordermemory "github.com/forcedowels/storefront/internal/order/infra/memory"
	orderpg "github.com/forcedowels/storefront/internal/order/infra/postgres"
	"github.com/forcedowels/storefront/internal/pricing"
	shippingapp "github.com/forcedowels/storefront/internal/shipping/app"
	"github.com/forcedowels/storefront/internal/shipping/infra/tql"
	"github.com/forcedowels/storefront/internal/shipping/infra/usps"
	"github.com/forcedowels/storefront/pkg/config"
	"github.com/forcedowels/storefront/pkg/logger"
	"github.com/forcedowels/storefront/pkg/postgres"
	"github.com/forcedowels/storefront/pkg/shutdown"
)

const kitPriceCents = 3600

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront-api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	table := pricing.DefaultTable()
	if cfg.PricingTablePath != "" {
		loaded, err := pricing.LoadTable(cfg.PricingTablePath)
		if err != nil {
			log.Error("pricing table load failed", slog.Any("err", err))
			os.Exit(1)
		}
		table = loaded
	}

	var (
		orderStore       orderapp.OrderStore
		requestStore     distributionapp.RequestStore
		distributorStore distributionapp.DistributorStore
	)
	switch cfg.Store {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connect failed", slog.Any("err", err))
			os.Exit(1)
		}
		defer db.Close()
		orderStore = orderpg.NewOrderRepo(db)
		requestStore = distributionpg.NewRequestRepo(db)
		distributorStore = distributionpg.NewDistributorRepo(db)
	default:
		log.Warn("using in-memory stores; single instance only")
		orderStore = ordermemory.New()
		requestStore = distributionmemory.NewRequestStore()
		distributorStore = distributionmemory.NewDistributorStore()
	}

	var sender notify.Sender = nopSender{log: log}
	if cfg.ResendAPIKey != "" {
		sender = notifyresend.New(cfg.ResendAPIKey)
	}
	tmpl := notify.Templates{
		From:          cfg.EmailFrom,
		BusinessEmail: cfg.BusinessEmail,
		BaseURL:       "https://forcedowels.com",
	}

	var verifier auth.Verifier
	if cfg.AuthVerifyURL != "" {
		verifier = auth.NewHTTPVerifier(cfg.AuthVerifyURL)
	} else {
		log.Warn("no AUTH_VERIFY_URL configured; using static dev tokens")
		verifier = auth.NewStaticVerifier(cfg.DevAuthTokens)
	}

	provider := stripeinfra.New(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	webhookVerify := func(payload []byte, signature string) (checkoutdomain.Session, bool, error) {
		return stripeinfra.VerifyWebhook(payload, signature, cfg.StripeWebhookSecret)
	}

	orders := orderapp.NewService(orderStore)
	checkout := checkoutapp.NewService(provider, orders, table, sender, tmpl, kitPriceCents, log)
	shipping := shippingapp.NewService(
		usps.New(cfg.USPSRatesURL),
		tql.New(cfg.FreightRatesURL),
		int64(cfg.FreightMinPounds),
	)
	distribution := distributionapp.NewService(requestStore, distributorStore, sender, tmpl, log)

	app := &httpapi.App{
		Orders:       orders,
		Checkout:     checkout,
		Shipping:     shipping,
		Distribution: distribution,
		Pricing:      table,
		Verifier:     verifier,
		Webhook:      webhookVerify,
		Log:          log,
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

// nopSender stands in when no email provider is configured.
type nopSender struct {
	log *slog.Logger
}

func (s nopSender) Send(_ context.Context, email notify.Email) error {
	s.log.Info("email suppressed (no provider configured)",
		slog.String("subject", email.Subject),
		slog.Any("to", email.To),
	)
	return nil
}

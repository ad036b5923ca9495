package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/furnimart/storefront/internal/backend"
	"github.com/furnimart/storefront/internal/cart"
	"github.com/furnimart/storefront/internal/config"
	"github.com/furnimart/storefront/internal/pricing"
	"github.com/furnimart/storefront/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(logLevel(cfg.LogLevel))

	token := os.Getenv("STOREFRONT_TOKEN")
	var sess *session.Session
	if token != "" {
		sess, err = session.FromToken(token, cfg.JWTSecret)
		if err != nil {
			slog.Error("Failed to read session token", "err", err)
			os.Exit(1)
		}
		slog.Info("Session established", "user_id", sess.UserID, "admin", sess.IsAdmin())
	} else {
		slog.Info("No session token, browsing anonymously")
	}

	client := backend.New(cfg.BaseURL, cfg.RequestTimeout, token)

	// --- Metrics ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":2112", metricsMux); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server error", "err", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Storefront smoke run: catalog, cart, quote ---
	furniture, err := client.ListFurniture(ctx)
	if err != nil {
		slog.Error("Failed to list furniture", "err", err)
		os.Exit(1)
	}
	deco, err := client.ListHomeDeco(ctx)
	if err != nil {
		slog.Error("Failed to list home decor", "err", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "furniture", len(furniture), "homedeco", len(deco))

	if sess.Authenticated() {
		cartSvc := cart.NewService(client, sess)
		cartSvc.OnChange(func() {
			slog.Debug("Cart changed")
		})

		entries, err := cartSvc.Fetch(ctx)
		if err != nil {
			slog.Error("Failed to fetch cart", "err", err)
			os.Exit(1)
		}

		subtotal := cart.Subtotal(entries)
		quote, err := pricing.ComputeQuote(subtotal)
		if err != nil {
			slog.Error("Failed to compute quote", "err", err)
			os.Exit(1)
		}
		slog.Info("Cart summary",
			"entries", len(entries),
			"subtotal", quote.Subtotal.String(),
			"shipping", quote.ShippingCost.String(),
			"grand_total", quote.GrandTotal.String(),
		)
	}

	slog.Info("Storefront client ready, metrics on :2112")
	<-ctx.Done()
	slog.Info("Shutting down...")
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Victor-armando18/promo-cart/internal/config"
	"github.com/Victor-armando18/promo-cart/internal/infrastructure"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
	"github.com/Victor-armando18/promo-cart/internal/logging"
	"github.com/Victor-armando18/promo-cart/internal/metrics"
	"github.com/Victor-armando18/promo-cart/internal/usecase"
)

type options struct {
	cfg    config.Config
	asJSON bool
	skus   []string
}

// parseArgs resolves flags over the config file and CART_* environment;
// explicitly set flags win.
func parseArgs(args []string) (options, error) {
	fs := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("CART_CONFIG"), "optional YAML config file")
	seedPath := fs.String("seed", "", "seed file (.json, .yaml); empty uses the built-in demo seed")
	patchPath := fs.String("patch", "", "RFC 6902 patch applied to the seed before loading")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	asJSON := fs.Bool("json", false, "print the receipt as JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: checkout [flags] SKU [SKU...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return options{}, err
	}
	if fs.Changed("seed") {
		cfg.SeedPath = *seedPath
	}
	if fs.Changed("patch") {
		cfg.SeedPatchPath = *patchPath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	return options{cfg: cfg, asJSON: *asJSON, skus: fs.Args()}, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg := opts.cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	loader := infrastructure.PatchedSeedLoader{Base: infrastructure.NewSeedLoader(cfg.SeedPath), PatchPath: cfg.SeedPatchPath}
	cart, _, err := usecase.NewSession(context.Background(), loader,
		usecase.WithLogger(logger),
		usecase.WithConditions(infrastructure.NewJsonLogicExecutor()),
		usecase.WithRecorder(metrics.NewCartMetrics(prometheus.NewRegistry())),
	)
	if err != nil {
		logger.Fatal("failed to build cart", zap.Error(err))
	}

	failed := false
	for _, sku := range opts.skus {
		if err := cart.AddItem(sku); err != nil {
			fmt.Printf("   could not add %s: %v\n", sku, err)
			failed = true
		}
	}

	receipt, err := cart.CheckoutReceipt(context.Background())
	if err != nil {
		logger.Warn("receipt incomplete", zap.Error(err))
	}

	if opts.asJSON {
		out, _ := json.MarshalIndent(receipt, "", "  ")
		fmt.Println(string(out))
	} else {
		displayReceipt(receipt)
	}
	if failed {
		os.Exit(1)
	}
}

func displayReceipt(r *interfaces.Receipt) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   RECEIPT %s\n", r.ID)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\n[1. LINES]")
	if len(r.Lines) == 0 {
		fmt.Println("   (empty cart)")
	}
	for _, l := range r.Lines {
		fmt.Printf("   %-8s %-16s %3d x %10s  -%10s = %10s\n",
			l.SKU, l.Name, l.Quantity, l.Price.StringFixed(2), l.AccumulatedDiscount.StringFixed(2), l.Net().StringFixed(2))
	}

	fmt.Println("\n[2. PROMOTIONS]")
	if len(r.Applied) == 0 && len(r.Skipped) == 0 {
		fmt.Println("   No promotion triggered.")
	}
	for _, a := range r.Applied {
		fmt.Printf("   applied  [%s] %d unit(s) of %s, -%s\n", a.PromotionID, a.Units, a.TargetSKU, a.Amount.StringFixed(2))
	}
	for _, s := range r.Skipped {
		fmt.Printf("   skipped  [%s] %s\n", s.PromotionID, s.Reason)
	}

	fmt.Println("\n[3. SUMMARY]")
	fmt.Printf("   Subtotal:  %s\n", r.Subtotal.StringFixed(2))
	fmt.Printf("   Discount:  %s\n", r.Discount.StringFixed(2))
	fmt.Printf("   Total:     %s\n", r.Total.StringFixed(2))
	fmt.Printf("   Delta:     %v (lines changed by checkout)\n", r.ServerDelta)

	fmt.Println(strings.Repeat("=", 60))
}

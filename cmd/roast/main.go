// Package main provides a one-shot CLI that roasts a single wallet address
// and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wallet-roaster/internal/adapter"
	"github.com/wallet-roaster/internal/config"
	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/roast"
	"github.com/wallet-roaster/internal/service"
)

func main() {
	address := flag.String("address", "", "wallet address to roast")
	engine := flag.String("engine", "deterministic", "roast engine: deterministic or ai")
	seed := flag.Int64("seed", 0, "randomness seed, 0 uses the wall clock")
	timeout := flag.Duration("timeout", 60*time.Second, "overall request timeout")
	flag.Parse()

	if *address == "" {
		fmt.Fprintln(os.Stderr, "usage: roast -address <wallet address> [-engine ai] [-seed N]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Keep request logs off stdout so the JSON result stays pipeable
	logging.InitGlobalLogger(logging.ParseLogLevel(cfg.Logging.Level), logging.ParseLogFormat(cfg.Logging.Format))
	logging.GetGlobalLogger().SetOutput(os.Stderr)

	zerion, err := adapter.NewZerionClient(cfg.Zerion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create portfolio data client: %v\n", err)
		os.Exit(1)
	}

	var rng roast.Rand
	if *seed != 0 {
		rng = roast.NewRand(*seed)
	} else {
		rng = roast.NewTimeRand()
	}

	scorer := roast.NewEngine(rng)
	deterministic := roast.NewDeterministicProvider(scorer)

	var generative roast.Provider
	if cfg.Gemini.APIKey != "" {
		gemini := adapter.NewGeminiClient(cfg.Gemini)
		generative = roast.NewGenerativeProvider(gemini, deterministic, rng, 0)
	}

	// No cache for a one-shot run
	walletService := service.NewWalletService(zerion, nil)
	roastService := service.NewRoastService(walletService, deterministic, generative)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := roastService.GenerateRoast(ctx, *address, service.RoastEngine(*engine))
	if err != nil {
		fmt.Fprintf(os.Stderr, "roast failed: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}

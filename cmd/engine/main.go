package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "morph/actions/copyfile"
	_ "morph/actions/uppercase"
	"morph/internal/config"
	"morph/internal/engine"
	"morph/internal/logging"
)

func main() {
	logging.InitFromEnv()

	cfgPath := flag.String("config", "", "engine config YAML (optional)")
	flag.Parse()

	cfg, err := config.LoadEngineConfig(*cfgPath)
	if err != nil {
		logging.L().Error("config", "err", err)
		os.Exit(1)
	}
	if cfg.Log.Level != "" || cfg.Log.JSON {
		logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(cfg)
	if err != nil {
		logging.L().Error("bootstrap", "err", err)
		os.Exit(1)
	}

	results, err := e.Run(ctx)
	if err != nil {
		logging.L().Error("run", "err", err)
		os.Exit(1)
	}
	for _, res := range results {
		logging.L().Info("transformed",
			"transform", res.Transform, "input", res.Input,
			"cache_key", res.CacheKey, "outputs", len(res.Outputs))
	}
}

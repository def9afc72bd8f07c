package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/config"
	"github.com/hailam/chess3d/internal/console"
	"github.com/hailam/chess3d/internal/storage"
)

var noStats = flag.Bool("nostats", false, "do not record lifetime statistics")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var extra []boardsync.Listener
	if !cfg.NoStorage && !*noStats {
		store, err := storage.Open(cfg.DataDir)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
		} else {
			defer store.Close()
			extra = append(extra, storage.NewRecorder(store))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := console.New(os.Stdout, cfg, extra...)
	if err := c.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Printf("console: %v", err)
	}
}

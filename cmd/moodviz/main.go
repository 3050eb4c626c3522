package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodviz/internal/app"
	"moodviz/internal/config"
	"moodviz/internal/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv, time.Now)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stderr, config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "moodviz: %v\n", err)
		os.Exit(2)
	}
	log.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, log.L()); err != nil {
		log.Error("moodviz failed", "err", err)
		os.Exit(1)
	}
}

// Command server runs the lockstep simulation with its steering engine
// and debug stream.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"hollowvale/server/internal/app"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the YAML bootstrap config")
	flag.Parse()

	cfg := app.DefaultConfig()
	if configPath != "" {
		loaded, err := app.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil && err != context.Canceled {
		log.Fatalf("server: %v", err)
	}
}

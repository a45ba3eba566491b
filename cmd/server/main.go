package main

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/arurana24/The-Third-Angle/internal/config"
	"github.com/arurana24/The-Third-Angle/internal/serverapp"
)

func main() {
	configPath := pflag.String("config", "", "path to YAML config file")
	addr := pflag.String("addr", "", "listen address (overrides config)")
	dataDir := pflag.String("data-dir", "", "data directory (overrides config)")
	pflag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	config.FromEnv(cfg)
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	logger := log.New(os.Stdout, "", 0)

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	logger.Printf(`{"level":"info","msg":"listening","addr":%q}`, cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}

package main

import (
	"flag"
	"net/http"

	"github.com/tylercoen/bankist/config"
	"github.com/tylercoen/bankist/internal/api"
	"github.com/tylercoen/bankist/internal/logging"
	"github.com/tylercoen/bankist/ledger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (YAML or JSON); built-in demo accounts otherwise")
	flag.Parse()

	logger := logging.SetupLogging()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(*configPath)
		if err != nil {
			logger.WithError(err).Fatal("load config")
		}
	}

	store, err := cfg.Build()
	if err != nil {
		logger.WithError(err).Fatal("seed accounts")
	}

	jour, err := cfg.Journal.Open()
	if err != nil {
		logger.WithError(err).Fatal("open journal")
	}
	defer jour.Close()

	engine := ledger.NewEngine(store, jour)
	handler := api.NewHandler(engine)
	router := api.NewRouter(handler, logger)

	logger.WithField("addr", cfg.Server.Addr).Info("server starting")
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

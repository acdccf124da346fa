package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"

	"github.com/ntncli/ntn/internal/adapters/credentials"
	"github.com/ntncli/ntn/internal/adapters/notion"
	"github.com/ntncli/ntn/internal/adapters/settings"
	"github.com/ntncli/ntn/internal/application"
	"github.com/ntncli/ntn/internal/ports"
)

type app struct {
	service  *application.Service
	settings settings.Settings
	store    ports.CredentialStore
	logger   hclog.Logger
}

func wireApp() (*app, error) {
	logger := newLogger()

	cfg, err := settings.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire settings: %w", err)
	}

	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}
	newAPI := func(token string) ports.DocumentAPI {
		return notion.NewClient(notion.Config{
			BaseURL:    cfg.BaseURL,
			Token:      token,
			HTTPClient: httpClient,
			Logger:     logger,
		})
	}

	return &app{
		service:  application.NewService(store, newAPI, logger),
		settings: cfg,
		store:    store,
		logger:   logger,
	}, nil
}

// newLogger is silent unless NTN_LOG selects a level (e.g. debug).
func newLogger() hclog.Logger {
	level := os.Getenv("NTN_LOG")
	if level == "" {
		return hclog.NewNullLogger()
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "ntn",
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

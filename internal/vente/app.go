// Package vente wires the checklist domain together for the commands and
// the TUI.
package vente

import (
	"github.com/rs/zerolog"

	"github.com/ventecheck/ventecheck/internal/core/config"
	"github.com/ventecheck/ventecheck/internal/core/registry"
	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/data/stores"
)

// App is the central entry point for all ventecheck operations. Commands
// and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config   *config.Config
	Registry *registry.Registry
	KV       *stores.KVStore
	Sales    *stores.SaleStore
	Sessions *stores.SessionStore
	Recorder *sale.Recorder
}

// NewApp constructs an App from the loaded configuration: the registry
// (with config overrides applied), the file-backed key-value store under
// the data dir, and the stores and recorder on top of it.
func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	opts := []registry.Option{
		registry.WithMinPaidServices(cfg.Checklist.MinPaidServices),
		registry.WithHistoryCapacity(cfg.History.Capacity),
	}
	for _, rule := range cfg.Sections {
		opts = append(opts, registry.WithSectionPattern(rule.Pattern, rule.Section))
	}
	reg := registry.New(opts...)

	kvStore := stores.NewKVStore(cfg.DataDir)
	saleStore := stores.NewSaleStore(kvStore)
	sessionStore := stores.NewSessionStore(kvStore)

	return &App{
		Config:   cfg,
		Registry: reg,
		KV:       kvStore,
		Sales:    saleStore,
		Sessions: sessionStore,
		Recorder: sale.NewRecorder(saleStore, reg, log.With().Str("component", "recorder").Logger()),
	}
}

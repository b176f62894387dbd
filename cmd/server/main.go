package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitledger/splitledger/internal/api"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/internal/storage/jsonfile"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
	"github.com/splitledger/splitledger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	slog.Info("Storage initialized", "driver", cfg.StoreDriver, "data_dir", cfg.DataDir)

	ldgr, err := ledger.New(context.Background(), store)
	if err != nil {
		slog.Error("Failed to initialize ledger", "error", err)
		os.Exit(1)
	}
	defer ldgr.Close()

	mux := http.NewServeMux()
	mux.Handle("/v1/", api.NewServer(ldgr).Handler())
	mux.Handle("/metrics", promhttp.Handler())

	// h2c lets clients use HTTP/2 without TLS.
	handler := h2c.NewHandler(mux, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return sqlite.New(filepath.Join(cfg.DataDir, "splitledger.db"))
	default:
		return jsonfile.New(filepath.Join(cfg.DataDir, "splitledger.json"))
	}
}

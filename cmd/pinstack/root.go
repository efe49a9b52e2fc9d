package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pinstack "github.com/pinstack/pinstack"
	"github.com/pinstack/pinstack/internal/config"
	"github.com/pinstack/pinstack/pkg/core"
)

var (
	verbose    bool
	configPath string
	dataDir    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pinstack",
	Short: "A local-first board keeper with automatic dual-store persistence",
	Long: `pinstack keeps a small collection of boards: styled notes with attached
images and links. Every change is persisted automatically to a primary and a
secondary store, so no work is lost on crashes or restarts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/pinstack/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory override")
}

// openService wires a service from the config file plus flag overrides. The
// caller must Close it so the teardown flush runs.
func openService() (*core.Service, config.Config) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	uri := cfg.DataDir
	if cfg.Adapter == "sqlite" {
		uri = cfg.DatabasePath()
	}

	opts := []pinstack.Option{
		pinstack.WithAdapter(cfg.Adapter),
		pinstack.WithEncoding(cfg.Encoding),
		pinstack.WithDebounce(cfg.Debounce),
		pinstack.WithAutosaveInterval(cfg.Autosave),
		pinstack.WithLogger(slog.Default()),
	}
	if cfg.RedisAddr != "" {
		opts = append(opts,
			pinstack.WithRedis(cfg.RedisAddr),
			pinstack.WithSessionTTL(cfg.SessionTTL),
		)
	}

	svc, err := pinstack.New(uri, opts...)
	if err != nil {
		fatal("Failed to open pinstack", err)
	}
	return svc, cfg
}

// closeService flushes and releases the service.
func closeService(svc *core.Service) {
	if err := svc.Close(context.Background()); err != nil {
		fatal("Failed to close pinstack", err)
	}
}

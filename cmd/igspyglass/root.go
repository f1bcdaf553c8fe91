package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"igspyglass/pkg/config"
	"igspyglass/pkg/instagram"
	"igspyglass/pkg/logger"
	"igspyglass/pkg/ratelimit"
	"igspyglass/pkg/retry"
	"igspyglass/pkg/storage"
)

var (
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	configFile string
	logLevel   string
	retries    int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "igspyglass",
	Short: "Resolve public Instagram profiles and content without credentials",
	Long: `igspyglass resolves public profile and content data from Instagram's
anonymous web surface.

It walks multiple acquisition strategies per lookup, falling back from the
structured JSON endpoint to HTML extraction, and degrades gracefully on
private accounts: identity fields and salvaged content previews instead of
hard failures.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .igspyglass.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 0, "retry failed lookups this many extra times")

	rootCmd.SetVersionTemplate(`igspyglass {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// app bundles the wired components every command needs.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	resolver *instagram.Resolver
	service  *storage.DownloadService
	recorder storage.Recorder
}

// newApp loads configuration and wires the engine.
func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if retries > 0 {
		cfg.Retry.Enabled = true
		cfg.Retry.MaxAttempts = retries + 1
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()

	limiter := ratelimit.NewFromConfig(&cfg.RateLimit)
	session := instagram.NewSession(&cfg.Platform, limiter, log)
	session.Bootstrap(cfg.Platform.ContentTimeout)
	resolver := instagram.NewResolver(session, cfg, log)

	pipeline := storage.NewPipeline(cfg, log)
	recorder, err := storage.NewFileRecorder(filepath.Join(cfg.Download.Folder, "history.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to open download history: %w", err)
	}
	service := storage.NewDownloadService(pipeline, recorder, cfg, log)

	return &app{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		service:  service,
		recorder: recorder,
	}, nil
}

// withRetry repeats op per the retry settings when enabled.
func (a *app) withRetry(op retry.Operation) error {
	if !a.cfg.Retry.Enabled {
		return op()
	}
	return retry.Do(op, retry.FromConfig(&a.cfg.Retry, a.log))
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

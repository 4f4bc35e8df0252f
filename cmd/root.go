package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/arffkit/internal/config"
	"github.com/KaramelBytes/arffkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Shared logger; rebuilt after config load
	logger = logging.New(os.Stderr, slog.LevelInfo, "text")
)

var rootCmd = &cobra.Command{
	Use:   "arffkit",
	Short: "arffkit: clean ARFF datasets by counting and reducing duplicate identifiers",
	Long: `arffkit inspects ARFF datasets for records sharing an identifier. It can count
identifier frequencies, and collapse duplicates into one record per identifier by
majority class vote while consolidating tracked attribute columns.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.arffkit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c
	if f := rootCmd.PersistentFlags(); f.Changed("log-format") && logFormat != "" {
		cfg.LogFormat = logFormat
	}
	logger = newLogger(os.Stderr, cfg)
}

func newLogger(w io.Writer, c *cfgpkg.Global) *slog.Logger {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(w, level, c.LogFormat)
}

// config returns the loaded configuration, loading it on first use.
func config() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

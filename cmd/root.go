package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/textobjects/internal/config"
	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/paths"
	"github.com/zjrosen/textobjects/internal/tracing"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not land in the picker's input.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const envPrefix = "TEXTOBJECTS"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noColor   bool
	logFile   string
	logLevel  string
	cfg       config.Config
	cfgErr    error

	provider   = tracing.Disabled()
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "textobjects",
	Short: "Vim-style text objects for any editor",
	Long: `Resolve Vim-style text objects (words, brackets, quotes, tags, paragraphs,
indent blocks, arguments) in a document at one or more cursor positions.

Positions are zero-based LINE:COLUMN pairs. Columns count UTF-16 code units
unless --grapheme is given.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file or project directory (default: nearest .textobjects/config.yaml, then ~/.config/textobjects/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (also TEXTOBJECTS_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"minimum debug log level: debug, info, warn, error (also TEXTOBJECTS_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output (also NO_COLOR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: debug.log, also TEXTOBJECTS_LOG)")
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config lookup order:
	// 1. --config (a file, a project dir or a .textobjects dir)
	// 2. the nearest .textobjects/config.yaml from the working directory up
	// 3. ~/.config/textobjects/config.yaml
	path := paths.ResolveConfigFile(cfgFile)
	if path != "" {
		if _, err := os.Stat(path); err == nil || cfgFile != "" {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				cfgErr = fmt.Errorf("reading config: %w", err)
				return
			}
		}
	}

	cfg, cfgErr = config.Load(v)
}

// setup runs before every command: logging first, so that config and
// tracing problems are logged too.
func setup(cmd *cobra.Command, _ []string) error {
	if debugFlag || os.Getenv(envPrefix+"_DEBUG") != "" {
		path := logFile
		if path == "" {
			path = os.Getenv(envPrefix + "_LOG")
		}
		if path == "" {
			path = "debug.log"
		}
		level, err := resolveLogLevel(logLevel)
		if err != nil {
			return err
		}
		cleanup, err := log.InitWithTeaLog(path, "textobjects")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.SetMinLevel(level)
		log.Info(log.CatConfig, "textobjects starting", "version", version, "command", cmd.Name())
	}

	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if cfgErr != nil {
		log.ErrorErr(log.CatConfig, "Failed to load config", cfgErr)
		if !tolerateConfigErr(cmd) {
			return cfgErr
		}
		cfg = config.Defaults()
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug(log.CatConfig, "Loaded config", "path", used)
	}

	p, err := tracing.NewProvider(cmd.Context(), cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	provider = p
	return nil
}

// resolveLogLevel picks the level from the flag, then TEXTOBJECTS_LOG_LEVEL.
// Neither set means debug.
func resolveLogLevel(flag string) (log.Level, error) {
	if flag == "" {
		flag = os.Getenv(envPrefix + "_LOG_LEVEL")
	}
	level, err := log.ParseLevel(flag)
	if err != nil {
		return log.LevelDebug, fmt.Errorf("--log-level: %w", err)
	}
	return level, nil
}

func tolerateConfigErr(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationTolerateConfigErr] == "true" {
			return true
		}
	}
	return false
}

// teardown flushes traces and closes the log. It runs whether or not the
// command failed.
func teardown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.ErrorErr(log.CatTrace, "Failed to flush traces", err)
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	teardown(context.WithoutCancel(ctx))
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

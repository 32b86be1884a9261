package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/textobjects/internal/config"
	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration file",
	// The config subcommands must work with a broken file so it can be fixed.
	Annotations: map[string]string{annotationTolerateConfigErr: "true"},
}

const annotationTolerateConfigErr = "tolerate-config-error"

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigInit(cmd.OutOrStdout(), configFilePath(), configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		return config.Marshal(cmd.OutOrStdout(), cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one value, such as engine.max_scan_width 5000",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if err := runConfigSet(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return err
	},
}

// configFilePath returns the file config commands read and write.
func configFilePath() string {
	return paths.ResolveConfigFile(cfgFile)
}

func runConfigInit(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Wrote default config", "path", path)
	_, err := fmt.Fprintf(w, "Wrote %s\n", path)
	return err
}

// runConfigSet writes key and checks that the file still loads. An invalid
// result is rolled back.
func runConfigSet(path, key, value string) error {
	previous, err := os.ReadFile(path) // #nosec G304 -- config path from flag or default
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := config.SetValue(path, key, value); err != nil {
		return err
	}

	v := viper.New()
	config.SetDefaults(v)
	v.SetConfigFile(path)
	loadErr := v.ReadInConfig()
	if loadErr == nil {
		_, loadErr = config.Load(v)
	}
	if loadErr == nil {
		return nil
	}

	if existed {
		_ = os.WriteFile(path, previous, 0o600) // #nosec G306
	} else {
		_ = os.Remove(path)
	}
	return fmt.Errorf("setting %s: %w", key, loadErr)
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

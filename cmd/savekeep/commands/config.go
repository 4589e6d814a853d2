package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/editor"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fs"
	"github.com/thoreinstein/savekeep/internal/paths"
)

var (
	initFormat string
	initForce  bool
)

func init() {
	configInitCmd.Flags().StringVar(&initFormat, "format", "yaml", "file format: yaml, toml")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage savekeep configuration",
	Long: `Manage savekeep configuration.

Configuration is read from ./config.yaml (or .toml) and then from the
savekeep config directory. Environment variables prefixed with SAVEKEEP_
override file values, e.g. SAVEKEEP_LIVE_DIR.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  savekeep config

  # Point savekeep at a different game
  savekeep config set app DELTARUNE

See Also: savekeep doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Valid keys: version, app, live_dir, store_dir.`,
	Example: `  savekeep config get live_dir

See Also: savekeep config set, savekeep config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

The file that was read is updated; if none was read, a new config.yaml is
written to the savekeep config directory. The result is validated first.`,
	Example: `  savekeep config set store_dir ~/saves/UNDERTALE-SAVEfiles

See Also: savekeep config get, savekeep config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values and the resolved directories in YAML format.`,
	RunE:  runConfigList,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file holding the defaults to the savekeep config
directory, or to --config if given.`,
	Example: `  savekeep config init
  savekeep config init --format toml`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which config file is used",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open the config file in $VISUAL or $EDITOR, falling back to nano or vi.

If no config file exists yet, one holding the defaults is written first.
The file is validated after the editor exits.`,
	Example: `  EDITOR=nano savekeep config edit`,
	RunE: runConfigEdit,
}

// configView is the config list output.
type configView struct {
	config.Config `yaml:",inline"`

	Resolved resolvedDirs `yaml:"resolved"`
}

type resolvedDirs struct {
	Live  string `yaml:"live"`
	Store string `yaml:"store"`
}

// currentConfig returns the loaded configuration or the defaults.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	cfg := *loadedConfig
	return &cfg
}

func runConfigList(c *cobra.Command, _ []string) error {
	return runConfigListWithWriter(c.OutOrStdout())
}

func runConfigListWithWriter(w io.Writer) error {
	view := configView{
		Config:   *currentConfig(),
		Resolved: resolvedDirs{Live: flags.LiveDir(), Store: flags.StoreDir()},
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	_, err = w.Write(data)
	return err
}

func runConfigGet(c *cobra.Command, args []string) error {
	value, err := currentConfig().Get(args[0])
	if err != nil {
		return errors.NewUserError(err, "Run: savekeep config list")
	}
	if value == "" {
		value = "not set"
	}
	fmt.Fprintln(c.OutOrStdout(), value)
	return nil
}

func runConfigSet(c *cobra.Command, args []string) error {
	return runConfigSetWithWriter(c.OutOrStdout(), args[0], args[1])
}

func runConfigSetWithWriter(w io.Writer, key, value string) error {
	cfg := currentConfig()
	if err := cfg.Set(key, value); err != nil {
		return errors.NewUserError(err, "Run: savekeep config list")
	}

	path := configTarget()
	if err := config.Write(path, cfg); err != nil {
		if errors.Is(err, config.ErrVersionTooLow) || errors.Is(err, config.ErrInvalidApp) ||
			errors.Is(err, config.ErrInvalidPath) || errors.Is(err, config.ErrDirsOverlap) {
			return errors.NewUserError(err, "")
		}
		return errors.NewSystemError(err, "check that "+filepath.Dir(path)+" is writable")
	}

	loadedConfig = cfg
	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, path)
	return nil
}

// configTarget returns the file config writes go to.
func configTarget() string {
	if configFlag != "" {
		return configFlag
	}
	if used := config.FileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

func runConfigInit(c *cobra.Command, _ []string) error {
	return runConfigInitWithWriter(c.OutOrStdout())
}

func runConfigInitWithWriter(w io.Writer) error {
	var ext string
	switch initFormat {
	case "yaml", "yml":
		ext = ".yaml"
	case "toml":
		ext = ".toml"
	default:
		return errors.NewUserError(
			errors.Newf("unknown config format %q", initFormat),
			"use --format yaml or --format toml")
	}

	path := configFlag
	if path == "" {
		path = filepath.Join(paths.ConfigDir(), "config"+ext)
	}

	if fs.Exists(fs.NewOSFS(), path) && !initForce {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"use --force to overwrite it")
	}

	if err := config.Write(path, config.Default()); err != nil {
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func runConfigEdit(c *cobra.Command, _ []string) error {
	path := configTarget()
	if !fs.Exists(fs.NewOSFS(), path) {
		if err := config.Write(path, currentConfig()); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	if err := editor.Open(c.Context(), path, c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr()); err != nil {
		return errors.NewUserError(err, "set $EDITOR to an installed editor")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewUserError(err, "Run: savekeep config edit")
	}
	fmt.Fprintf(c.OutOrStdout(), "%s is valid\n", path)
	return nil
}

func runConfigPath(c *cobra.Command, _ []string) error {
	w := c.OutOrStdout()
	if used := config.FileUsed(); used != "" {
		fmt.Fprintln(w, used)
		return nil
	}
	fmt.Fprintf(w, "no config file found; defaults in use (savekeep config init writes %s)\n", paths.ConfigFile())
	return nil
}

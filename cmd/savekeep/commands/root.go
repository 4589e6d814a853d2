// Package commands implements the CLI commands for savekeep.
package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd"
	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/backup"
	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/flags"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/fs"
	"github.com/thoreinstein/savekeep/internal/logging"
	"github.com/thoreinstein/savekeep/internal/paths"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = "SAVEKEEP_DEBUG"

var (
	// liveFlag holds the value of the --live flag.
	liveFlag string

	// storeFlag holds the value of the --store flag.
	storeFlag string

	// configFlag holds the value of the --config flag.
	configFlag string

	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	// logFormat holds the value of the --log-format flag.
	logFormat string

	// logFile holds the path to the log file.
	logFile string
)

var (
	// logFileHandle is the --log-file opened by setupLogging.
	logFileHandle *os.File

	// loadedConfig is the configuration read by initConfig.
	loadedConfig *config.Config

	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(closeLogFile)

	rootCmd.PersistentFlags().StringVar(&liveFlag, "live", "",
		"live save directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "",
		"backup store directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"config file (default: ./config.yaml or "+paths.ConfigFile()+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")

	rootCmd.Version = cmd.Short()
	rootCmd.SetVersionTemplate("savekeep version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFlag)
}

var rootCmd = &cobra.Command{
	Use:   "savekeep",
	Short: "Keep named snapshots of a game's save directory",
	Long: `savekeep keeps named snapshots of a directory of save files.

Save the live directory under a name, list what you have, load a snapshot
back over the live directory, and delete the ones you no longer need.
Loading is crash-safe: the live directory is renamed aside first and put
back if the copy fails.

The live and store directories come from the configuration (see
'savekeep config path') and can be overridden with --live and --store.`,
	Example: `  # Save the current state
  savekeep backup create "before boss"

  # Load it back later
  savekeep backup restore "before boss"

  # Check directories and leftovers
  savekeep doctor

  See Also: savekeep backup, savekeep config, savekeep doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return resolveDirs(cmd, args)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.New("cannot use --quiet and --verbose together"),
			"pass either -q or -v")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	closeLogFile()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logFileHandle = f
		cfg.Tee = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// closeLogFile closes the --log-file handle, if one is open.
func closeLogFile() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil
}

// skipsConfig reports whether cmd runs without a valid configuration.
// doctor reports the load error itself; config init, path and edit exist to
// repair it.
func skipsConfig(cmd *cobra.Command) bool {
	switch cmd.CommandPath() {
	case "savekeep help", "savekeep version", "savekeep doctor",
		"savekeep config init", "savekeep config path", "savekeep config edit":
		return true
	}
	return cmd.Name() == "help"
}

// resolveDirs publishes the live and store directories to flags.
func resolveDirs(cmd *cobra.Command, _ []string) error {
	cfg := loadedConfig
	if configLoadErr != nil {
		if !skipsConfig(cmd) {
			return errors.NewConfigError(configLoadErr)
		}
		cfg = config.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	live := cfg.ResolveLiveDir()
	if liveFlag != "" {
		live = filepath.Clean(paths.ExpandHome(liveFlag))
	}
	store := cfg.ResolveStoreDir()
	if storeFlag != "" {
		store = filepath.Clean(paths.ExpandHome(storeFlag))
	}

	if !skipsConfig(cmd) && (fs.Within(live, store) || fs.Within(store, live)) {
		return errors.NewUserError(
			errors.Wrapf(config.ErrDirsOverlap, "live %s, store %s", live, store),
			"keep the backup store outside the live save directory")
	}

	flags.SetLiveDir(live)
	flags.SetStoreDir(store)
	logging.FromContext(cmd.Context()).Debug("resolved directories", "live", live, "store", store)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

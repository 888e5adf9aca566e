package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/DonovanMods/modkit/internal/domain"
	"github.com/DonovanMods/modkit/internal/storage/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"

	// Global flags
	configDir      string
	dataDir        string
	installersPath string
	gameID         string
	verbose        bool
	jsonOutput     bool
	noColor        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modkit",
	Short: "modkit - plan mod installs for packaged-asset games",
	Long: `modkit inspects mod archives and works out which files to install and where,
using per-game installer definitions from installers.yaml.

When an archive holds several candidate mod folders you are asked which ones to
install. Run 'modkit --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !colorEnabled() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/modkit)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/modkit)")
	rootCmd.PersistentFlags().StringVar(&installersPath, "installers", "", "absolute path to an installers.yaml to use instead of the config directory's")
	rootCmd.PersistentFlags().StringVarP(&gameID, "game", "g", "", "game ID to operate on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
func colorEnabled() bool {
	if noColor {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
// When --json is set and an error occurs, prints {"error":"..."} to stdout before exiting.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	stop()
	os.Exit(exitCode(err))
}

// exitCode reports err and returns the process exit code for it
func exitCode(err error) int {
	if errors.Is(err, domain.ErrUserCanceled) {
		return 2
	}
	if jsonOutput {
		fmt.Printf(`{"error":%q}`+"\n", err.Error())
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}

// newLogger creates the CLI logger; --verbose enables debug output
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "modkit"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// dirs returns the config and data directories with defaults applied
func dirs() (string, string, error) {
	cfgDir, dDir := configDir, dataDir
	if cfgDir != "" && dDir != "" {
		return cfgDir, dDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("home directory: %w", err)
	}
	if cfgDir == "" {
		cfgDir = filepath.Join(homeDir, ".config", "modkit")
	}
	if dDir == "" {
		dDir = filepath.Join(homeDir, ".local", "share", "modkit")
	}
	return cfgDir, dDir, nil
}

// app is the state shared by commands
type app struct {
	configDir  string
	dataDir    string
	cfg        *config.Config
	installers map[string]*config.InstallerConfig
	logger     *log.Logger
}

// loadApp reads config.yaml and the installer definitions
func loadApp() (*app, error) {
	cfgDir, dDir, err := dirs()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgDir)
	if err != nil {
		return nil, err
	}

	var installers map[string]*config.InstallerConfig
	if installersPath != "" {
		path, err := config.ParseConfigPath(installersPath)
		if err != nil {
			return nil, fmt.Errorf("--installers: %w", err)
		}
		installers, err = config.LoadInstallersFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		installers, err = config.LoadInstallers(cfgDir)
		if err != nil {
			return nil, err
		}
	}

	return &app{
		configDir:  cfgDir,
		dataDir:    dDir,
		cfg:        cfg,
		installers: installers,
		logger:     newLogger(),
	}, nil
}

// requireGame resolves the game from --game or the configured default
func (a *app) requireGame() (*config.InstallerConfig, error) {
	id := gameID
	if id == "" {
		id = a.cfg.DefaultGame
		if id != "" {
			a.logger.Debug("using default game", "game", id)
		}
	}
	if id == "" {
		return nil, fmt.Errorf("no game specified; use --game or -g flag, or set default_game in config.yaml")
	}

	def, err := config.Lookup(a.installers, id)
	if err != nil {
		return nil, fmt.Errorf("no installer configured in %s: %w", config.InstallersFileName, err)
	}
	return def, nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/abhisek/studiosim/internal/logging"
	"github.com/abhisek/studiosim/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studiosim",
	Short: "Office assistant training simulator",
	Long: "Studiosim is a terminal simulator where you spend twelve months as the assistant of a\n" +
		"professional studio. An AI boss writes each workday and grades your replies.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDIOSIM_DB env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file (overrides STUDIOSIM_LOG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides STUDIOSIM_LOG_LEVEL)")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(versionCmd)
}

// settings are the process-wide knobs read from the environment.
type settings struct {
	Language    string        `env:"STUDIOSIM_LANGUAGE" envDefault:"Italian"`
	CallTimeout time.Duration `env:"STUDIOSIM_CALL_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"STUDIOSIM_LOG_LEVEL" envDefault:"info"`
}

func loadSettings() (settings, error) {
	s, err := env.ParseAs[settings]()
	if err != nil {
		return settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDIOSIM_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by the flags.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openLogger opens the file logger selected by --log-file and --log-level,
// falling back to the environment.
func openLogger(cmd *cobra.Command, cfg settings) (*logging.Logger, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		p, err := logging.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	levelName, _ := cmd.Flags().GetString("log-level")
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(path, level)
	if err != nil {
		return nil, err
	}
	logger.Debug("logger ready", slog.String("path", path), slog.String("level", level.String()))
	return logger, nil
}

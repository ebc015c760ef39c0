package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/studiosim/internal/app"
	"github.com/abhisek/studiosim/internal/content"
	"github.com/abhisek/studiosim/internal/llm"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/sim"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("studiosim needs an interactive terminal; use the history or llm commands for scripted access")
	}

	ctx := cmd.Context()
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, err := openLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Close()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	var pack *scenario.Pack
	if path, _ := cmd.Flags().GetString("scenarios"); path != "" {
		pack, err = scenario.LoadPackFile(path)
		if err != nil {
			return err
		}
		logger.Info("scenario pack loaded", "path", path, "name", pack.Name, "scenarios", len(pack.Scenarios))
	}

	// The simulation works without an LLM: days fall back to the offline
	// scenario and grading is unavailable.
	var provider llm.Provider
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		provider, err = llm.NewProviderFromEnv(ctx, eventRepo, logger.Logger)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			fmt.Fprintln(os.Stderr, "LLM provider not configured: set GEMINI_API_KEY or STUDIOSIM_LLM_PROVIDER.")
			fmt.Fprintln(os.Stderr, "Running in offline mode: practice days only, no grading.")
		case err != nil:
			return fmt.Errorf("build LLM provider: %w", err)
		}
	}

	backend := content.New(provider, pack, content.DefaultConfig().WithLanguage(cfg.Language))
	logger.Info("starting session", "online", backend.Online(), "model", backend.ModelID())

	ctrl := sim.NewController(sim.NewState(), backend,
		sim.WithConfig(sim.Config{CallTimeout: cfg.CallTimeout}),
		sim.WithEventRepo(eventRepo),
		sim.WithLogger(logger.Logger),
	)

	if name, _ := cmd.Flags().GetString("studio"); name != "" {
		studio, err := scenario.ParseStudio(name)
		if err != nil {
			return err
		}
		if err := ctrl.SelectStudio(studio); err != nil {
			return fmt.Errorf("select studio: %w", err)
		}
	}

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Controller: ctrl,
		Events:     eventRepo,
		SkipSplash: skipSplash,
	})
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiosim/internal/llm"
	"github.com/abhisek/studiosim/internal/logging"
	"github.com/abhisek/studiosim/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Validate and export scenario packs",
}

var scenarioValidateCmd = &cobra.Command{
	Use:   "validate <pack.yaml>",
	Short: "Check a scenario pack for errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := scenario.LoadPackFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		name := p.Name
		if name == "" {
			name = args[0]
		}
		fmt.Fprintf(out, "%s: %d scenarios OK\n", name, len(p.Scenarios))
		for _, sc := range p.Scenarios {
			studio := string(sc.Studio)
			if studio == "" {
				studio = "any"
			}
			fmt.Fprintf(out, "  month %2d  %-10s  %-16s  %d emails  %d events  %s\n",
				sc.Month, studio, truncate(sc.ID, 16), len(sc.Emails), len(sc.Events), sc.DayTitle)
		}
		return nil
	},
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate one scenario and print it as a YAML pack",
	Long: "Generate one workday with the configured LLM and print it as a scenario pack,\n" +
		"ready to edit and load with --scenarios. Without an LLM the offline day is exported.",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, _ := cmd.Flags().GetInt("month")
		studioName, _ := cmd.Flags().GetString("studio")

		studio, err := scenario.ParseStudio(studioName)
		if err != nil {
			return err
		}
		if month < 1 || month > 12 {
			return fmt.Errorf("month must be between 1 and 12, got %d", month)
		}

		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		sc, err := exportScenario(cmd.Context(), month, studio, cfg)
		if err != nil {
			return err
		}

		data, err := scenario.EncodePack(&scenario.Pack{
			Name:      fmt.Sprintf("%s month %d", studio.Label(), month),
			Scenarios: []scenario.DailyScenario{*sc},
		})
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func exportScenario(ctx context.Context, month int, studio scenario.StudioType, cfg settings) (*scenario.DailyScenario, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProviderFromEnv(ctx, nil, logging.Discard().Logger)
	if errors.Is(err, llm.ErrNotConfigured) {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; exporting the offline day.")
		sc := scenario.Fallback(month)
		sc.Studio = studio
		return sc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("build LLM provider: %w", err)
	}

	genCfg := scenario.DefaultGeneratorConfig()
	genCfg.Language = cfg.Language
	sc, err := scenario.NewGenerator(provider, genCfg).Generate(ctx, month, studio)
	if err != nil {
		return nil, fmt.Errorf("generate scenario: %w", err)
	}
	return sc, nil
}

func init() {
	scenarioExportCmd.Flags().IntP("month", "m", 1, "Month to generate (1-12)")
	scenarioExportCmd.Flags().String("studio", "legal", "Studio (legal, medical, architect, accounting)")

	scenarioCmd.AddCommand(scenarioValidateCmd)
	scenarioCmd.AddCommand(scenarioExportCmd)
}

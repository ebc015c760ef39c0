package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a simulation session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("offline", false, "Run without an LLM: offline practice days, no grading or drafts")
	cmd.Flags().String("studio", "", "Preselect the studio (legal, medical, architect, accounting)")
	cmd.Flags().String("scenarios", "", "YAML scenario pack served before the generator")
	cmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

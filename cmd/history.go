package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiosim/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded sessions and graded tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()
		out := cmd.OutOrStdout()

		events, err := repo.QuerySessionEvents(ctx, store.QueryOpts{SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query session events: %w", err)
		}
		feedback, err := repo.QueryFeedback(ctx, store.QueryOpts{SessionID: sessionID, Limit: limit})
		if err != nil {
			return fmt.Errorf("query feedback: %w", err)
		}

		if len(events) == 0 && len(feedback) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		if len(events) > 0 {
			fmt.Fprintln(out, "Session Events")
			fmt.Fprintln(out, strings.Repeat("─", 88))
			fmt.Fprintf(out, "%-19s  %-8s  %-19s  %-12s  %5s  %5s  %s\n",
				"Timestamp", "Session", "Action", "Studio", "Month", "Score", "Note")
			fmt.Fprintln(out, strings.Repeat("─", 88))
			for _, e := range events {
				note := e.Detail
				if e.Fallback {
					note = strings.TrimSpace("offline " + note)
				}
				fmt.Fprintf(out, "%-19s  %-8s  %-19s  %-12s  %5d  %5d  %s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(e.SessionID, 8),
					e.Action,
					e.Studio,
					e.Month,
					e.Score,
					note,
				)
			}
		}

		if len(feedback) > 0 {
			if len(events) > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Graded Tasks (newest first)")
			fmt.Fprintln(out, strings.Repeat("─", 88))
			for _, f := range feedback {
				fmt.Fprintf(out, "%s  month %d  %s  %s  %d/100  (session total %d)\n",
					f.Timestamp.Local().Format("2006-01-02 15:04"),
					f.Month, f.TaskType, f.EmailID, f.Score, f.SessionScore)
				fmt.Fprintf(out, "    reply:    %s\n", oneLine(f.UserAction, 70))
				fmt.Fprintf(out, "    feedback: %s\n", oneLine(f.AIFeedback, 70))
				if f.Suggestions != "" {
					fmt.Fprintf(out, "    tip:      %s\n", oneLine(f.Suggestions, 70))
				}
			}
		}
		return nil
	},
}

// oneLine flattens s to a single line of at most n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of graded tasks to show")
	historyCmd.Flags().StringP("session", "s", "", "Only show one session id")
}

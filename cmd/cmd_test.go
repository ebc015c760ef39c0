package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "studiosim")
}

func TestScenarioValidate(t *testing.T) {
	sc := scenario.Fallback(2)
	sc.ID = "day-2"
	data, err := scenario.EncodePack(&scenario.Pack{Name: "classe 3B", Scenarios: []scenario.DailyScenario{*sc}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "scenario", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "classe 3B: 1 scenarios OK")
	assert.Contains(t, out, "day-2")
}

func TestScenarioValidate_Broken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios:\n  - month: 13\n"), 0o644))

	_, err := execute(t, "scenario", "validate", path)
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "abcdef123456", Action: store.ActionMonthStarted, Studio: "legal", Month: 1, Fallback: true,
	}))
	require.NoError(t, st.EventRepo().AppendFeedback(ctx, store.FeedbackEventData{
		SessionID: "abcdef123456", Month: 1, TaskType: "EMAIL_REPLY", EmailID: "e1",
		UserAction: "Gentile Mario,\ngrazie.", AIFeedback: "Ottimo.", Score: 85, SessionScore: 9,
	}))
	require.NoError(t, st.Close())

	out, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "month_started")
	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "85/100")
	assert.Contains(t, out, "Gentile Mario, grazie.")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\n b\tc", 10))
	assert.Equal(t, "abcd…", oneLine("abcdefgh", 5))
}

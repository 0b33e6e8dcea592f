package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TURNI_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEFAULT_HOURLY_RATE", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIWorkflow(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "assign", "2025-11-01", "2025-11-10", "MATT")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-11-10")

	_, err = run(t, "assign", "2025-11-11", "2025-11-15", "NOTTE")
	require.NoError(t, err)

	out, err = run(t, "stats", "2025-11")
	require.NoError(t, err)
	assert.Contains(t, out, "120.0 h")

	out, err = run(t, "pay", "2025-11", "--rate", "13", "--deduction", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "reference (calendar)")
	assert.Contains(t, out, "1404.00")

	out, err = run(t, "rotate", "2025-11-15")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-11-15 LIB")

	_, err = run(t, "assign", "2025-11-15", "2025-11-01", "MATT")
	assert.Error(t, err)

	backup := filepath.Join(dir, "backup.json")
	_, err = run(t, "export", backup)
	require.NoError(t, err)
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	var b models.Backup
	require.NoError(t, json.Unmarshal(data, &b))
	assert.Len(t, b.Shifts, 15)
	assert.Equal(t, "LIB", b.Shifts["2025-11-15"])

	_, err = run(t, "report", "2025-11", filepath.Join(dir, "nov.xlsx"))
	require.NoError(t, err)
}

func TestCLITypes(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "types", "add", "Smart", "Smart working", "--hours", "09:00-17:00", "--tier", "base")
	require.NoError(t, err)
	assert.Contains(t, out, "added SMART")

	_, err = run(t, "types", "add", "smart", "Again")
	assert.Error(t, err)

	out, err = run(t, "types", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SMART")

	_, err = run(t, "types", "rm", "SMART")
	require.NoError(t, err)
	out, err = run(t, "types", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "SMART")
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/hoops-draft/internal/seed"
	"github.com/aatrey56/hoops-draft/internal/store/sqlite"
)

func TestMigrateAndSeed(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "db", "hoops.db")
	t.Setenv("HOOPS_DB_PATH", dbFile)
	t.Setenv("HOOPS_DATA_ROOT", filepath.Join(dir, "data"))

	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, rootCmd.Execute())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--samples"})
	require.NoError(t, rootCmd.Execute())

	var rep seed.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, 30, rep.Teams)
	assert.Equal(t, 150, rep.Players)

	db, err := sqlite.Open(context.Background(), dbFile)
	require.NoError(t, err)
	defer db.Close()
	team, err := db.GetTeamByAbbreviation(context.Background(), "OKC")
	require.NoError(t, err)
	assert.Equal(t, "Oklahoma City Thunder", team.Name)
}

func TestFetchLeagueRequiresBaseURL(t *testing.T) {
	t.Setenv("HOOPS_DATA_ROOT", t.TempDir())
	t.Setenv("HOOPS_LEAGUE_BASE_URL", "")
	rootCmd.SetArgs([]string{"fetch-league"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "league base url is required")
}

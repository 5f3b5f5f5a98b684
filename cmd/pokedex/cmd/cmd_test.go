package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pokedex/internal/config"
	"github.com/f3rmion/pokedex/internal/dex"
	"github.com/f3rmion/pokedex/internal/pokeapi"
	"github.com/f3rmion/pokedex/internal/pokeapi/pokeapitest"
)

// isolate points config, logs and the API at per-test locations.
func isolate(t *testing.T) (*pokeapitest.Server, string) {
	t.Helper()
	srv := pokeapitest.NewServer()
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("POKEDEX_API_BASE_URL", srv.URL)
	return srv, dir
}

// resetFlags clears flag state left over from an earlier execution.
func resetFlags() {
	cfgFile = ""
	_ = lookupCmd.Flags().Set("random", "false")
	_ = lookupCmd.Flags().Set("json", "false")
	_ = initCmd.Flags().Set("force", "false")
	_ = rootCmd.PersistentFlags().Set("verbose", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLookupText(t *testing.T) {
	_, dir := isolate(t)

	out, err := execute(t, "lookup", "Pikachu")
	require.NoError(t, err)

	assert.Contains(t, out, "#25 pikachu")
	assert.Contains(t, out, "Location:       viridian-forest-area")
	assert.Contains(t, out, "Moves:          mega-punch, pay-day, thunder-punch, slam, double-kick\n")
	assert.Contains(t, out, "Evolution Path: pichu -> pikachu -> raichu")

	_, err = os.Stat(filepath.Join(dir, "state", "pokedex", "pokedex.log"))
	assert.NoError(t, err, "logs go to the state directory")
}

func TestLookupJSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "lookup", "132", "--json")
	require.NoError(t, err)

	var c dex.Creature
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 132, c.ID)
	assert.Equal(t, "ditto", c.Name)
	assert.Equal(t, dex.LocationUnknown, c.LocationArea)
	assert.Empty(t, c.EvolutionPath)
}

func TestLookupNotFound(t *testing.T) {
	isolate(t)

	_, err := execute(t, "lookup", "missingno")
	assert.ErrorIs(t, err, pokeapi.ErrNotFound)
}

func TestLookupArgs(t *testing.T) {
	isolate(t)

	_, err := execute(t, "lookup")
	assert.Error(t, err, "needs a name or --random")

	_, err = execute(t, "lookup", "pikachu", "--random")
	assert.Error(t, err, "name and --random are exclusive")

	_, err = execute(t, "lookup", "   ")
	assert.ErrorIs(t, err, dex.ErrEmptyToken)
}

func TestLookupRandomHonorsMaxID(t *testing.T) {
	srv, _ := isolate(t)
	t.Setenv("POKEDEX_API_MAX_RANDOM_ID", "1")

	_, err := execute(t, "lookup", "--random")
	assert.ErrorIs(t, err, pokeapi.ErrNotFound)
	assert.Equal(t, 1, srv.Hits("/pokemon/1"))
}

func TestLookupBadConfig(t *testing.T) {
	isolate(t)

	_, err := execute(t, "--config", "/nonexistent/config.yaml", "lookup", "pikachu")
	assert.Error(t, err)
}

func TestInitWritesDefaults(t *testing.T) {
	_, dir := isolate(t)
	path := filepath.Join(dir, "custom", "pokedex.yaml")

	out, err := execute(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().UI, cfg.UI)
	assert.Equal(t, config.Default().API.MaxRandomID, cfg.API.MaxRandomID)

	_, err = execute(t, "--config", path, "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "--config", path, "init", "--force")
	assert.NoError(t, err)
}

func TestInitDefaultLocation(t *testing.T) {
	_, dir := isolate(t)

	_, err := execute(t, "init")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "config", "pokedex", "config.yaml"))
	assert.NoError(t, err)
}

func TestDefaultConfigFileIsRead(t *testing.T) {
	_, dir := isolate(t)
	path := filepath.Join(dir, "config", "pokedex", "config.yaml")

	cfg := config.Default()
	cfg.API.BaseURL = "http://127.0.0.1:1"
	require.NoError(t, config.Save(path, cfg))
	t.Setenv("POKEDEX_API_BASE_URL", "")
	require.NoError(t, os.Unsetenv("POKEDEX_API_BASE_URL"))

	_, err := execute(t, "lookup", "pikachu")
	assert.Error(t, err, "the unreachable base url from the file is used")
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/ocsm/internal/metadata"
	"github.com/cory-johannsen/ocsm/internal/sheet"
)

type traitsOutput struct {
	Name   string       `json:"name"`
	Traits sheet.Traits `json:"traits"`
}

func setupWorkspace(t *testing.T) (metaDir, sheetDir string) {
	t.Helper()
	ws := t.TempDir()
	metaDir = filepath.Join(ws, "metadata")
	sheetDir = filepath.Join(ws, "sheets")
	t.Setenv("OCSM_STORAGE_BACKEND", "file")
	t.Setenv("OCSM_STORAGE_METADATA_DIR", metaDir)
	t.Setenv("OCSM_STORAGE_SHEET_DIR", sheetDir)
	t.Setenv("OCSM_LOGGING_LEVEL", "error")
	return metaDir, sheetDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeTraits reads the JSON object that follows any leading ref line.
func decodeTraits(t *testing.T, out string) traitsOutput {
	t.Helper()
	i := strings.Index(out, "{")
	require.GreaterOrEqual(t, i, 0, "no JSON in output: %q", out)
	var got traitsOutput
	require.NoError(t, json.Unmarshal([]byte(out[i:]), &got))
	return got
}

func TestNewCmd_FifthWithRoll(t *testing.T) {
	_, sheetDir := setupWorkspace(t)

	out, err := run(t, "new", "DnD.Fifth", "--name", "Bruenor", "--roll", "--out", "bruenor")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(sheetDir, "bruenor.ocs"))

	got := decodeTraits(t, out)
	assert.Equal(t, "Bruenor", got.Name)
	require.NotNil(t, got.Traits.Fifth)
	assert.Equal(t, 2, got.Traits.Fifth.ProficiencyBonus)

	_, err = os.Stat(filepath.Join(sheetDir, "bruenor.ocs"))
	assert.NoError(t, err)
}

func TestNewCmd_DefaultFileName(t *testing.T) {
	_, sheetDir := setupWorkspace(t)

	_, err := run(t, "new", "CoD.Changeling")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(sheetDir, "NewSheet.ocs"))
	assert.NoError(t, err)
}

func TestNewCmd_RollRejectedOutsideFifth(t *testing.T) {
	setupWorkspace(t)
	_, err := run(t, "new", "CoD.Mortal", "--roll")
	assert.Error(t, err)
}

func TestNewCmd_UnknownSystem(t *testing.T) {
	setupWorkspace(t)
	_, err := run(t, "new", "Shadowrun")
	assert.ErrorIs(t, err, sheet.ErrUnknownGameSystem)
}

func TestEditCmd_RecalculatesAndSaves(t *testing.T) {
	setupWorkspace(t)

	_, err := run(t, "new", "CoD.Mortal", "--name", "Ada", "--out", "ada")
	require.NoError(t, err)

	out, err := run(t, "edit", "ada", "attribute", "Dexterity", "3")
	require.NoError(t, err)
	got := decodeTraits(t, out)
	require.NotNil(t, got.Traits.CoD)
	assert.Equal(t, 4, got.Traits.CoD.Initiative)
	assert.Equal(t, 1, got.Traits.CoD.Defense)

	out, err = run(t, "show", "ada")
	require.NoError(t, err)
	got = decodeTraits(t, out)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 4, got.Traits.CoD.Initiative)
}

func TestEditCmd_InvalidValueLeavesSheet(t *testing.T) {
	setupWorkspace(t)

	_, err := run(t, "new", "CoD.Mortal", "--out", "ada")
	require.NoError(t, err)

	_, err = run(t, "edit", "ada", "attribute", "Dexterity", "seven")
	assert.ErrorIs(t, err, sheet.ErrInvalidValue)

	out, err := run(t, "show", "ada")
	require.NoError(t, err)
	assert.Equal(t, 2, decodeTraits(t, out).Traits.CoD.Initiative)
}

func TestMetadataCmd_InitShowList(t *testing.T) {
	metaDir, _ := setupWorkspace(t)

	_, err := run(t, "metadata", "init")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(metaDir, "CoD.Changeling.ocmd"))
	require.NoError(t, err)

	out, err := run(t, "metadata", "show", "CoD.Changeling")
	require.NoError(t, err)
	assert.Contains(t, out, "seemings")

	out, err = run(t, "metadata", "list", "CoD.Changeling", "seemings")
	require.NoError(t, err)
	assert.Contains(t, out, "Beast")
	assert.Contains(t, out, "Wizened")

	out, err = run(t, "metadata", "list", "CoD.Changeling", "courts", "Spring")
	require.NoError(t, err)
	assert.Contains(t, out, `"Spring"`)
}

func TestMetadataCmd_ListUnknownCollection(t *testing.T) {
	setupWorkspace(t)

	_, err := run(t, "metadata", "list", "CoD.Mortal", "seemings")
	assert.ErrorIs(t, err, metadata.ErrUnknownCollection)

	_, err = run(t, "metadata", "list", "DnD.Fifth", "spells")
	assert.ErrorIs(t, err, metadata.ErrUnknownCollection)
}

func TestNewCmd_BadMetadataDirWithWatchFails(t *testing.T) {
	metaDir, _ := setupWorkspace(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(metaDir), 0o755))
	require.NoError(t, os.WriteFile(metaDir, []byte("not a directory"), 0o644))
	t.Setenv("OCSM_WATCH_ENABLED", "true")

	done := make(chan error, 1)
	go func() {
		_, err := run(t, "new", "CoD.Mortal")
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorContains(t, err, "metadata watcher")
	case <-time.After(5 * time.Second):
		t.Fatal("command did not return")
	}
}

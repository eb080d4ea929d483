package report

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/pingu-dev/gmod-translator/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testSummary() *entity.RunSummary {
	summary := entity.NewRunSummary("test-run")
	summary.Add(&entity.Outcome{
		Addon:      &entity.AddonRecord{ID: "100"},
		Status:     entity.StatusSucceeded,
		Title:      "First Addon",
		OutputPath: "/out/First Addon",
	})
	summary.Add(&entity.Outcome{
		Addon:  &entity.AddonRecord{ID: "300"},
		Status: entity.StatusSkipped,
		Reason: "no package file in addon folder or cache",
	})
	summary.Add(&entity.Outcome{
		Addon:   &entity.AddonRecord{ID: "200"},
		Status:  entity.StatusFailed,
		Title:   "Broken Addon",
		Reason:  "decompile failed: corrupt package",
		Warning: "",
	})
	summary.Finish()

	return summary
}

func TestWrite(t *testing.T) {
	const root = "/workshop/4000Translated"

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))

	require.NoError(t, NewWriter(fs, testLogger()).Write(root, testSummary()))

	md, err := afero.ReadFile(fs, filepath.Join(root, MarkdownFileName))
	require.NoError(t, err)

	content := string(md)
	require.Contains(t, content, "test-run")
	require.Contains(t, content, "**3** addons: 1 succeeded, 1 skipped, 1 failed.")
	require.Contains(t, content, "First Addon")
	require.Contains(t, content, "decompile failed: corrupt package")

	htmlContent, err := afero.ReadFile(fs, filepath.Join(root, HTMLFileName))
	require.NoError(t, err)
	require.Contains(t, string(htmlContent), "<h1")
	require.Contains(t, string(htmlContent), "First Addon")
}

func TestWriteSortsAddonsByID(t *testing.T) {
	const root = "/workshop/4000Translated"

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))

	require.NoError(t, NewWriter(fs, testLogger()).Write(root, testSummary()))

	md, err := afero.ReadFile(fs, filepath.Join(root, MarkdownFileName))
	require.NoError(t, err)

	content := string(md)
	first := strings.Index(content, "(100)")
	second := strings.Index(content, "200 failed")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	require.Less(t, first, second, "addon lines must be sorted by id")
}

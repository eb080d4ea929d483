package gmad

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// fakeExecutor stands in for the gmad process, writing (or not writing)
// extracted files into the -out directory.
type fakeExecutor struct {
	fs      afero.Fs
	files   map[string]string
	failure error
	output  string

	gotBinary string
	gotArgs   []string
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string) (string, error) {
	f.gotBinary = binary
	f.gotArgs = args

	if f.failure != nil {
		return f.output, f.failure
	}

	outDir := args[len(args)-1]
	for name, content := range f.files {
		if err := afero.WriteFile(f.fs, filepath.Join(outDir, name), []byte(content), 0o644); err != nil {
			return "", err
		}
	}

	return f.output, nil
}

func TestExtract(t *testing.T) {
	fs := afero.NewMemMapFs()
	exec := &fakeExecutor{
		fs:    fs,
		files: map[string]string{"lua/init.lua": "print()", "addon.json": "{}"},
	}

	c, err := New("/opt/gmad", 30*time.Second, testLogger(), WithFS(fs), WithExecutor(exec))
	require.NoError(t, err)

	dest := "/out/My Addon"
	require.NoError(t, c.Extract(context.Background(), "/cache/100.gma", dest))

	require.Equal(t, "/opt/gmad", exec.gotBinary)
	require.Equal(t, []string{"extract", "-file", "/cache/100.gma", "-out", dest + stagingSuffix}, exec.gotArgs)

	content, err := afero.ReadFile(fs, filepath.Join(dest, "lua/init.lua"))
	require.NoError(t, err)
	require.Equal(t, "print()", string(content))

	exists, err := afero.DirExists(fs, dest+stagingSuffix)
	require.NoError(t, err)
	require.False(t, exists, "staging dir must not survive a successful extract")
}

func TestExtractToolFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	exec := &fakeExecutor{
		fs:      fs,
		failure: fmt.Errorf("exit status 1"),
		output:  "Unable to open gma",
	}

	c, err := New("/opt/gmad", 30*time.Second, testLogger(), WithFS(fs), WithExecutor(exec))
	require.NoError(t, err)

	dest := "/out/My Addon"
	err = c.Extract(context.Background(), "/cache/100.gma", dest)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unable to open gma")

	for _, dir := range []string{dest, dest + stagingSuffix} {
		exists, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		require.False(t, exists, "no output may remain after a failed extract: %s", dir)
	}
}

func TestExtractEmptyOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	exec := &fakeExecutor{fs: fs, output: "done"}

	c, err := New("/opt/gmad", 30*time.Second, testLogger(), WithFS(fs), WithExecutor(exec))
	require.NoError(t, err)

	dest := "/out/My Addon"
	err = c.Extract(context.Background(), "/cache/100.gma", dest)
	require.Error(t, err)

	exists, err := afero.DirExists(fs, dest)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestExtractReplacesExistingDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	dest := "/out/My Addon"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dest, "stale.txt"), []byte("old"), 0o644))

	exec := &fakeExecutor{fs: fs, files: map[string]string{"fresh.txt": "new"}}

	c, err := New("/opt/gmad", 30*time.Second, testLogger(), WithFS(fs), WithExecutor(exec))
	require.NoError(t, err)

	require.NoError(t, c.Extract(context.Background(), "/cache/100.gma", dest))

	exists, err := afero.Exists(fs, filepath.Join(dest, "stale.txt"))
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = afero.Exists(fs, filepath.Join(dest, "fresh.txt"))
	require.NoError(t, err)
	require.True(t, exists)
}

func TestNewRequiresBinary(t *testing.T) {
	_, err := New("  ", time.Second, testLogger())
	require.Error(t, err)
}

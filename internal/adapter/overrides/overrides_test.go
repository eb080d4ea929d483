package overrides

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoad(t *testing.T) {
	const root = "/workshop/4000Translated"

	testCases := []struct {
		name        string
		content     string
		noFile      bool
		expectError bool
		expected    map[string]string
	}{
		{
			name:     "missing file yields empty map",
			noFile:   true,
			expected: map[string]string{},
		},
		{
			name: "titles parsed from frontmatter",
			content: `---
titles:
  "100": My Renamed Addon
  "200": Another Name
---

Notes about my library.
`,
			expected: map[string]string{"100": "My Renamed Addon", "200": "Another Name"},
		},
		{
			name:     "no frontmatter yields empty map",
			content:  "# just notes\n",
			expected: map[string]string{},
		},
		{
			name: "frontmatter without titles yields empty map",
			content: `---
author: pingu
---
`,
			expected: map[string]string{},
		},
		{
			name: "malformed frontmatter is an error",
			content: `---
titles: [broken
---
`,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if !tc.noFile {
				require.NoError(t, afero.WriteFile(fs, filepath.Join(root, FileName), []byte(tc.content), 0o644))
			}

			titles, err := NewLoader(fs, testLogger()).Load(root)
			if tc.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, titles)
		})
	}
}

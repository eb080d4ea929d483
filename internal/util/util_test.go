package util

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatSize(tt.size))
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"123456789", true},
		{"0", true},
		{"", false},
		{"12a3", false},
		{"addon_123", false},
		{"12 3", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, IsNumeric(tt.name), tt.name)
	}
}

func TestDirSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/lib/a/one.gma", make([]byte, 100), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/lib/a/b/two.gma", make([]byte, 50), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/other/three.gma", make([]byte, 25), 0o644))

	require.Equal(t, int64(150), DirSize(fs, "/lib"))
	require.Equal(t, int64(0), DirSize(fs, "/missing"))
}

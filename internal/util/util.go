package util

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FormatSize renders a byte count as a human readable string.
func FormatSize(size int64) string {
	const unit = 1024

	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.2f %cB", float64(size)/float64(div), "KMGTP"[exp])
}

// DirSize returns the total size of all regular files under root.
// Unreadable entries count as zero rather than failing the walk.
func DirSize(fs afero.Fs, root string) int64 {
	var total int64

	_ = afero.Walk(fs, root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}

		return nil
	})

	return total
}

// IsNumeric reports whether name consists solely of ASCII digits.
// Workshop addon folders are named by their numeric published-file id.
func IsNumeric(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

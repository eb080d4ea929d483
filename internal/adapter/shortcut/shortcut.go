package shortcut

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"

	"github.com/pingu-dev/gmod-translator/internal/adapter/steam"
	"github.com/pingu-dev/gmod-translator/internal/common"
)

const baseName = "View on Steam Workshop"

// ArtifactNames lists every link-artifact file name the emitter may
// produce, for callers that scan existing output folders.
func ArtifactNames() []string {
	return []string{baseName + ".url", baseName + ".desktop"}
}

// Emitter writes a link artifact pointing at an addon's workshop listing,
// using the running platform's native link-file convention. Platforms
// without one report unsupported instead of failing.
type Emitter struct {
	fs   afero.Fs
	goos string
	log  *slog.Logger
}

func NewEmitter(log *slog.Logger) *Emitter {
	return NewEmitterFor(afero.NewOsFs(), runtime.GOOS, log)
}

func NewEmitterFor(fs afero.Fs, goos string, log *slog.Logger) *Emitter {
	return &Emitter{
		fs:   fs,
		goos: goos,
		log:  log.With(slog.String("item", "ShortcutEmitter")),
	}
}

func (e *Emitter) Supported() bool {
	switch e.goos {
	case "windows", "linux":
		return true
	default:
		return false
	}
}

// Write emits the link artifact into destDir. Returns
// common.ErrShortcutUnsupported on platforms without a link-file format.
func (e *Emitter) Write(id, destDir string) error {
	url := steam.ListingURL(id)

	var name, content string
	switch e.goos {
	case "windows":
		name = baseName + ".url"
		content = fmt.Sprintf("[InternetShortcut]\nURL=%s\nIconIndex=0\n", url)
	case "linux":
		name = baseName + ".desktop"
		content = fmt.Sprintf("[Desktop Entry]\nType=Link\nName=%s\nURL=%s\n", baseName, url)
	default:
		return common.ErrShortcutUnsupported
	}

	path := filepath.Join(destDir, name)
	if err := afero.WriteFile(e.fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cannot write shortcut: %w", err)
	}

	e.log.Debug("Wrote workshop shortcut", slog.String("path", path))

	return nil
}

package workshop

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/pingu-dev/gmod-translator/internal/common"
	"github.com/pingu-dev/gmod-translator/internal/entity"
	"github.com/pingu-dev/gmod-translator/internal/util"
)

const packageExt = ".gma"

// TranslatedRoot derives the output root for a content root: a sibling
// directory named by appending Translated (4000 becomes 4000Translated).
func TranslatedRoot(contentRoot string) string {
	return filepath.Join(filepath.Dir(contentRoot), filepath.Base(contentRoot)+"Translated")
}

// Storage reads the installed addon library: the content root with one
// numeric folder per addon, plus the optional shared package cache.
type Storage struct {
	fs          afero.Fs
	contentRoot string
	cacheDir    string
	log         *slog.Logger
}

func NewStorage(fs afero.Fs, contentRoot, cacheDir string, log *slog.Logger) *Storage {
	return &Storage{
		fs:          fs,
		contentRoot: contentRoot,
		cacheDir:    cacheDir,
		log:         log.With(slog.String("item", "WorkshopStorage")),
	}
}

func (s *Storage) ContentRoot() string {
	return s.contentRoot
}

// Enumerate lists every installed addon as an AddonRecord, sorted by id.
func (s *Storage) Enumerate(ctx context.Context) ([]*entity.AddonRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, s.contentRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read content root: %w", err)
	}

	var records []*entity.AddonRecord
	for _, entry := range entries {
		if !entry.IsDir() || !util.IsNumeric(entry.Name()) {
			continue
		}

		records = append(records, &entity.AddonRecord{
			ID:         entry.Name(),
			SourcePath: filepath.Join(s.contentRoot, entry.Name()),
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	s.log.Info("Enumerated addons", slog.Int("count", len(records)))

	return records, nil
}

// LocatePackage finds the addon's .gma file: first inside the addon's own
// folder, then as <id>.gma in the shared cache. ErrPackageAbsent when
// neither location has it.
func (s *Storage) LocatePackage(rec *entity.AddonRecord) (string, error) {
	entries, err := afero.ReadDir(s.fs, rec.SourcePath)
	if err != nil {
		return "", fmt.Errorf("cannot read addon folder: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), packageExt) {
			return filepath.Join(rec.SourcePath, entry.Name()), nil
		}
	}

	if s.cacheDir != "" {
		cached := filepath.Join(s.cacheDir, rec.ID+packageExt)
		if info, err := s.fs.Stat(cached); err == nil && !info.IsDir() {
			return cached, nil
		}
	}

	return "", common.ErrPackageAbsent
}

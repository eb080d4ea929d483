package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"

	"github.com/pingu-dev/gmod-translator/internal/common"
	"github.com/pingu-dev/gmod-translator/internal/config"
	"github.com/pingu-dev/gmod-translator/internal/util"
)

// Relative candidates are joined with every mounted volume (Windows-style
// installs), home candidates are anchored under the user's home directory
// (Linux-style installs). 4000 is the Garry's Mod workshop app id.
var (
	workshopHomeCandidates = []string{
		".steam/steam/steamapps/workshop/content/4000",
		".local/share/Steam/steamapps/workshop/content/4000",
	}
	workshopRelCandidates = []string{
		"Program Files (x86)/Steam/steamapps/workshop/content/4000",
		"Steam/steamapps/workshop/content/4000",
	}

	gmadHomeCandidates = []string{
		".steam/steam/steamapps/common/GarrysMod/bin/linux64/gmad",
		".local/share/Steam/steamapps/common/GarrysMod/bin/linux64/gmad",
	}
	gmadRelCandidates = []string{
		"Program Files (x86)/Steam/steamapps/common/GarrysMod/bin/gmad.exe",
		"Steam/steamapps/common/GarrysMod/bin/gmad.exe",
	}

	cacheHomeCandidates = []string{
		".steam/steam/steamapps/common/GarrysMod/garrysmod/cache/workshop",
		".local/share/Steam/steamapps/common/GarrysMod/garrysmod/cache/workshop",
	}
	cacheRelCandidates = []string{
		"Program Files (x86)/Steam/steamapps/common/GarrysMod/garrysmod/cache/workshop",
		"Steam/steamapps/common/GarrysMod/garrysmod/cache/workshop",
	}
)

// VolumeLister enumerates locally mounted storage volume roots.
type VolumeLister interface {
	Volumes() []string
}

type Scanner struct {
	fs      afero.Fs
	volumes VolumeLister
	cfg     *config.SteamConfig
	log     *slog.Logger
}

func NewScanner(cfg *config.SteamConfig, log *slog.Logger) *Scanner {
	return NewScannerWithFS(afero.NewOsFs(), newOSVolumeLister(), cfg, log)
}

func NewScannerWithFS(fs afero.Fs, volumes VolumeLister, cfg *config.SteamConfig, log *slog.Logger) *Scanner {
	return &Scanner{
		fs:      fs,
		volumes: volumes,
		cfg:     cfg,
		log:     log.With(slog.String("item", "Scanner")),
	}
}

// FindContentRoot locates the workshop content directory. A configured
// override is validated and used as-is; otherwise every candidate location
// is probed in deterministic order across all volumes.
func (s *Scanner) FindContentRoot(ctx context.Context) (string, error) {
	if s.cfg.WorkshopDir != "" {
		if err := s.ValidateWorkshopDir(s.cfg.WorkshopDir); err != nil {
			return "", fmt.Errorf("invalid workshop dir override: %w", err)
		}

		return s.cfg.WorkshopDir, nil
	}

	path, found := s.probe(ctx, workshopHomeCandidates, workshopRelCandidates, s.dirExists)
	if !found {
		return "", common.ErrContentRootNotFound
	}

	s.log.Info("Found workshop content root", slog.String("path", path))

	return path, nil
}

// FindGmadBinary locates the gmad executable. The caller decides whether
// absence is fatal.
func (s *Scanner) FindGmadBinary(ctx context.Context) (string, bool) {
	if s.cfg.GmadPath != "" {
		if err := s.ValidateGmadPath(s.cfg.GmadPath); err != nil {
			s.log.Warn("Invalid gmad path override", slog.String("path", s.cfg.GmadPath), slog.Any("error", err))

			return "", false
		}

		return s.cfg.GmadPath, true
	}

	path, found := s.probe(ctx, gmadHomeCandidates, gmadRelCandidates, s.fileExists)
	if found {
		s.log.Info("Found gmad binary", slog.String("path", path))
	}

	return path, found
}

// FindCacheDir locates the shared workshop package cache. Optional.
func (s *Scanner) FindCacheDir(ctx context.Context) (string, bool) {
	if s.cfg.CacheDir != "" {
		if err := s.ValidateCacheDir(s.cfg.CacheDir); err != nil {
			s.log.Warn("Invalid cache dir override", slog.String("path", s.cfg.CacheDir), slog.Any("error", err))

			return "", false
		}

		return s.cfg.CacheDir, true
	}

	path, found := s.probe(ctx, cacheHomeCandidates, cacheRelCandidates, s.dirExists)
	if found {
		s.log.Info("Found package cache dir", slog.String("path", path))
	}

	return path, found
}

// probe checks home-anchored candidates first, then every volume combined
// with the relative candidates. Volumes are sorted so repeated runs on an
// unchanged system yield the same result.
func (s *Scanner) probe(ctx context.Context, homes, relatives []string, exists func(string) bool) (string, bool) {
	for _, home := range homes {
		if ctx.Err() != nil {
			return "", false
		}

		candidate := filepath.Join(xdg.Home, filepath.FromSlash(home))
		if exists(candidate) {
			return candidate, true
		}
	}

	volumes := append([]string(nil), s.volumes.Volumes()...)
	sort.Strings(volumes)

	for _, volume := range volumes {
		for _, rel := range relatives {
			if ctx.Err() != nil {
				return "", false
			}

			candidate := filepath.Join(volume, filepath.FromSlash(rel))
			if exists(candidate) {
				return candidate, true
			}
		}
	}

	return "", false
}

// ValidateWorkshopDir checks a user-supplied workshop path: it must be an
// existing directory containing at least one numeric addon folder.
func (s *Scanner) ValidateWorkshopDir(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory")
	}

	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return fmt.Errorf("cannot read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() && util.IsNumeric(entry.Name()) {
			return nil
		}
	}

	return fmt.Errorf("path contains no addon folders (numeric directories)")
}

func (s *Scanner) ValidateGmadPath(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is not a file")
	}

	return nil
}

func (s *Scanner) ValidateCacheDir(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory")
	}

	return nil
}

func (s *Scanner) dirExists(path string) bool {
	info, err := s.fs.Stat(path)

	return err == nil && info.IsDir()
}

func (s *Scanner) fileExists(path string) bool {
	info, err := s.fs.Stat(path)

	return err == nil && !info.IsDir()
}

type osVolumeLister struct{}

func newOSVolumeLister() osVolumeLister {
	return osVolumeLister{}
}

// Volumes returns candidate mount roots. On Windows every reachable drive
// letter is a volume; elsewhere the filesystem root stands in so relative
// candidates still resolve.
func (osVolumeLister) Volumes() []string {
	if runtime.GOOS != "windows" {
		return []string{"/"}
	}

	fs := afero.NewOsFs()
	var volumes []string
	for d := 'A'; d <= 'Z'; d++ {
		root := string(d) + `:\`
		if _, err := fs.Stat(root); err == nil {
			volumes = append(volumes, root)
		}
	}

	return volumes
}

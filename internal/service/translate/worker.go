package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pingu-dev/gmod-translator/internal/common"
	"github.com/pingu-dev/gmod-translator/internal/entity"
)

type TitleResolver interface {
	ResolveTitle(ctx context.Context, id string) string
}

type PackageLocator interface {
	LocatePackage(rec *entity.AddonRecord) (string, error)
}

type Decompiler interface {
	Extract(ctx context.Context, gmaPath, destDir string) error
}

type ShortcutEmitter interface {
	Supported() bool
	Write(id, destDir string) error
}

// worker drives one addon through the translation state machine:
// resolve title, locate package, decompile, write shortcut. Each stage
// boundary observes cancellation; failures are contained in the outcome.
type worker struct {
	resolver       TitleResolver
	locator        PackageLocator
	decompiler     Decompiler
	emitter        ShortcutEmitter
	translatedRoot string
	names          *nameRegistry
	log            *slog.Logger
}

func (w *worker) Translate(ctx context.Context, rec *entity.AddonRecord) *entity.Outcome {
	if ctx.Err() != nil {
		return w.cancelled(rec, "")
	}

	title := w.resolver.ResolveTitle(ctx, rec.ID)
	w.log.Debug("Resolved title", slog.String("id", rec.ID), slog.String("title", title))

	if ctx.Err() != nil {
		return w.cancelled(rec, title)
	}

	gmaPath, err := w.locator.LocatePackage(rec)
	if err != nil {
		if errors.Is(err, common.ErrPackageAbsent) {
			return &entity.Outcome{
				Addon:  rec,
				Status: entity.StatusSkipped,
				Title:  title,
				Reason: "no package file in addon folder or cache",
			}
		}

		return &entity.Outcome{
			Addon:  rec,
			Status: entity.StatusFailed,
			Title:  title,
			Reason: fmt.Sprintf("cannot locate package: %s", err),
		}
	}

	if ctx.Err() != nil {
		return w.cancelled(rec, title)
	}

	destDir := filepath.Join(w.translatedRoot, w.names.Reserve(title, rec.ID))

	if err := w.decompiler.Extract(ctx, gmaPath, destDir); err != nil {
		return &entity.Outcome{
			Addon:  rec,
			Status: entity.StatusFailed,
			Title:  title,
			Reason: fmt.Sprintf("decompile failed: %s", err),
		}
	}

	outcome := &entity.Outcome{
		Addon:      rec,
		Status:     entity.StatusSucceeded,
		Title:      title,
		OutputPath: destDir,
	}

	if ctx.Err() != nil {
		outcome.Warning = "run cancelled before shortcut writing"

		return outcome
	}

	switch {
	case !w.emitter.Supported():
		outcome.Warning = "shortcut artifacts unsupported on this platform"
	default:
		if err := w.emitter.Write(rec.ID, destDir); err != nil {
			outcome.Warning = fmt.Sprintf("cannot write shortcut: %s", err)
		}
	}

	return outcome
}

func (w *worker) cancelled(rec *entity.AddonRecord, title string) *entity.Outcome {
	return &entity.Outcome{
		Addon:  rec,
		Status: entity.StatusSkipped,
		Title:  title,
		Reason: "cancelled",
	}
}

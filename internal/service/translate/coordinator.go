package translate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/pingu-dev/gmod-translator/internal/adapter/shortcut"
	"github.com/pingu-dev/gmod-translator/internal/common"
	"github.com/pingu-dev/gmod-translator/internal/entity"
)

var shortcutIDRegexp = regexp.MustCompile(`id=(\d+)`)

type AddonStorage interface {
	Enumerate(ctx context.Context) ([]*entity.AddonRecord, error)
	PackageLocator
}

// Coordinator owns the bounded worker pool that drives every installed
// addon through the translation pipeline and aggregates the outcomes.
type Coordinator struct {
	running atomic.Bool

	fs             afero.Fs
	store          AddonStorage
	resolver       TitleResolver
	decompiler     Decompiler
	emitter        ShortcutEmitter
	translatedRoot string
	retranslate    bool
	log            *slog.Logger
}

func NewCoordinator(
	fs afero.Fs,
	store AddonStorage,
	resolver TitleResolver,
	decompiler Decompiler,
	emitter ShortcutEmitter,
	translatedRoot string,
	retranslate bool,
	log *slog.Logger,
) *Coordinator {
	return &Coordinator{
		fs:             fs,
		store:          store,
		resolver:       resolver,
		decompiler:     decompiler,
		emitter:        emitter,
		translatedRoot: translatedRoot,
		retranslate:    retranslate,
		log:            log.With(slog.String("item", "Coordinator")),
	}
}

// Run translates every enumerated addon using concurrency parallel
// workers. One addon's failure never aborts the run; only an unreadable
// content root fails Run itself. The returned summary covers every
// enumerated addon exactly once.
func (c *Coordinator) Run(ctx context.Context, concurrency int) (*entity.RunSummary, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, common.ErrRunAlreadyStarted
	}
	defer c.running.Store(false)

	if concurrency < 1 {
		concurrency = 1
	}

	records, err := c.store.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot enumerate addons: %w", err)
	}

	if err := c.fs.MkdirAll(c.translatedRoot, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create translated root: %w", err)
	}

	translated := c.loadTranslated()

	summary := entity.NewRunSummary(uuid.NewString())
	defer summary.Finish()

	if len(records) == 0 {
		return summary, nil
	}

	in := make(chan *entity.AddonRecord, len(records))
	out := make(chan *entity.Outcome, len(records))

	for _, rec := range records {
		in <- rec
	}
	close(in)

	names := newNameRegistry()

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for n := 0; n < concurrency; n++ {
		go c.runWorker(ctx, n, names, translated, in, out, &wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	for outcome := range out {
		summary.Add(outcome)

		switch outcome.Status {
		case entity.StatusSucceeded:
			c.log.Info("Addon translated",
				slog.String("id", outcome.Addon.ID),
				slog.String("title", outcome.Title),
				slog.String("output", outcome.OutputPath))
		case entity.StatusSkipped:
			c.log.Info("Addon skipped",
				slog.String("id", outcome.Addon.ID),
				slog.String("reason", outcome.Reason))
		case entity.StatusFailed:
			c.log.Error("Addon failed",
				slog.String("id", outcome.Addon.ID),
				slog.String("reason", outcome.Reason))
		}

		if outcome.Warning != "" {
			c.log.Warn("Addon warning",
				slog.String("id", outcome.Addon.ID),
				slog.String("warning", outcome.Warning))
		}
	}

	return summary, nil
}

func (c *Coordinator) runWorker(
	ctx context.Context,
	n int,
	names *nameRegistry,
	translated map[string]struct{},
	in chan *entity.AddonRecord,
	out chan *entity.Outcome,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	log := c.log.With(slog.Int("worker_id", n))
	log.Debug("Started")

	w := &worker{
		resolver:       c.resolver,
		locator:        c.store,
		decompiler:     c.decompiler,
		emitter:        c.emitter,
		translatedRoot: c.translatedRoot,
		names:          names,
		log:            log,
	}

	// out is buffered for every record, so sends never block and each
	// record yields exactly one outcome even after cancellation.
	for rec := range in {
		if _, done := translated[rec.ID]; done {
			out <- &entity.Outcome{
				Addon:  rec,
				Status: entity.StatusSkipped,
				Reason: "already translated",
			}

			continue
		}

		out <- w.Translate(ctx, rec)
	}

	log.Debug("Done")
}

// loadTranslated collects the ids of addons already present under the
// translated root by reading the shortcut artifact inside each output
// folder, matching the original tool's resume behaviour.
func (c *Coordinator) loadTranslated() map[string]struct{} {
	translated := make(map[string]struct{})
	if c.retranslate {
		return translated
	}

	entries, err := afero.ReadDir(c.fs, c.translatedRoot)
	if err != nil {
		return translated
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		for _, name := range shortcut.ArtifactNames() {
			data, err := afero.ReadFile(c.fs, filepath.Join(c.translatedRoot, entry.Name(), name))
			if err != nil {
				continue
			}

			if m := shortcutIDRegexp.FindSubmatch(data); m != nil {
				translated[string(m[1])] = struct{}{}

				break
			}
		}
	}

	if len(translated) > 0 {
		c.log.Info("Found previously translated addons", slog.Int("count", len(translated)))
	}

	return translated
}

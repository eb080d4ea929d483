package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pingu-dev/gmod-translator/internal/entity"
	"github.com/pingu-dev/gmod-translator/internal/util"
)

const (
	MarkdownFileName = "_translation_report.md"
	HTMLFileName     = "_translation_report.html"

	timeRound = 100 * time.Millisecond
)

// Writer renders a run summary into human-readable report files inside
// the translated root: a markdown source and its HTML rendering.
type Writer struct {
	fs  afero.Fs
	md  goldmark.Markdown
	log *slog.Logger
}

func NewWriter(fs afero.Fs, log *slog.Logger) *Writer {
	md := goldmark.New(
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &Writer{
		fs:  fs,
		md:  md,
		log: log.With(slog.String("item", "ReportWriter")),
	}
}

// Write emits both report files. Report trouble is returned for logging
// but is never fatal to the run.
func (w *Writer) Write(translatedRoot string, summary *entity.RunSummary) error {
	content := w.render(translatedRoot, summary)

	mdName := filepath.Join(translatedRoot, MarkdownFileName)
	if err := afero.WriteFile(w.fs, mdName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cannot write markdown report: %w", err)
	}

	var buf bytes.Buffer
	if err := w.md.Convert([]byte(content), &buf); err != nil {
		return fmt.Errorf("cannot convert report to html: %w", err)
	}

	htmlName := filepath.Join(translatedRoot, HTMLFileName)
	if err := afero.WriteFile(w.fs, htmlName, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write html report: %w", err)
	}

	w.log.Info("Wrote run report", slog.String("path", mdName))

	return nil
}

func (w *Writer) render(translatedRoot string, summary *entity.RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Workshop translation report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", summary.RunID)
	fmt.Fprintf(&b, "- Started: %s\n", summary.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Duration: %s\n", summary.Duration().Round(timeRound))
	fmt.Fprintf(&b, "- Library size: %s\n\n", util.FormatSize(util.DirSize(w.fs, translatedRoot)))

	fmt.Fprintf(&b, "**%d** addons: %d succeeded, %d skipped, %d failed.\n\n",
		summary.Total, summary.Succeeded, summary.Skipped, summary.Failed)

	outcomes := append([]*entity.Outcome(nil), summary.Outcomes...)
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Addon.ID < outcomes[j].Addon.ID })

	fmt.Fprintf(&b, "## Addons\n\n")
	for _, o := range outcomes {
		switch o.Status {
		case entity.StatusSucceeded:
			fmt.Fprintf(&b, "- ✓ **%s** (%s)", o.Title, o.Addon.ID)
		case entity.StatusSkipped:
			fmt.Fprintf(&b, "- ○ %s skipped: %s", o.Addon.ID, o.Reason)
		case entity.StatusFailed:
			fmt.Fprintf(&b, "- ✗ %s failed: %s", o.Addon.ID, o.Reason)
		}

		if o.Warning != "" {
			fmt.Fprintf(&b, " _(warning: %s)_", o.Warning)
		}

		b.WriteByte('\n')
	}

	return b.String()
}

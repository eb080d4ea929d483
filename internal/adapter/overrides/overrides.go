package overrides

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
)

// FileName is the optional per-library override file kept next to the
// translated folders. Its frontmatter maps addon ids to custom titles;
// the markdown body is free-form user notes.
const FileName = "_overrides.md"

type overrideMeta struct {
	Titles map[string]string `yaml:"titles"`
}

type Loader struct {
	fs  afero.Fs
	md  goldmark.Markdown
	log *slog.Logger
}

func NewLoader(fs afero.Fs, log *slog.Logger) *Loader {
	md := goldmark.New(
		goldmark.WithExtensions(
			&frontmatter.Extender{},
		),
	)

	return &Loader{
		fs:  fs,
		md:  md,
		log: log.With(slog.String("item", "OverridesLoader")),
	}
}

// Load reads title overrides from translatedRoot. A missing file yields an
// empty map; a malformed one is an error so typos do not silently vanish.
func (l *Loader) Load(translatedRoot string) (map[string]string, error) {
	fileName := filepath.Join(translatedRoot, FileName)

	data, err := afero.ReadFile(l.fs, fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}

		return nil, fmt.Errorf("cannot read overrides file: %w", err)
	}

	ctx := parser.NewContext()

	var buf bytes.Buffer
	if err := l.md.Convert(data, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("cannot parse overrides file: %w", err)
	}

	fm := frontmatter.Get(ctx)
	if fm == nil {
		return map[string]string{}, nil
	}

	var meta overrideMeta
	if err := fm.Decode(&meta); err != nil {
		return nil, fmt.Errorf("cannot decode overrides frontmatter: %w", err)
	}

	if meta.Titles == nil {
		meta.Titles = map[string]string{}
	}

	l.log.Info("Loaded title overrides", slog.Int("count", len(meta.Titles)))

	return meta.Titles, nil
}

package gmad

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const stagingSuffix = ".extracting"

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (output string, err error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, args...).CombinedOutput()

	return string(out), err
}

// Client wraps gmad CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	fs      afero.Fs
	exec    Executor
	log     *slog.Logger
}

type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

func WithFS(fs afero.Fs) Option {
	return func(c *Client) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// New constructs a gmad client.
func New(binary string, timeout time.Duration, log *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("gmad binary required")
	}

	client := &Client{
		binary:  binary,
		timeout: timeout,
		fs:      afero.NewOsFs(),
		exec:    commandExecutor{},
		log:     log.With(slog.String("item", "GmadClient")),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Extract decompiles gmaPath into destDir. Extraction runs against a
// staging directory that is renamed into place on success and removed on
// failure, so callers never observe a partially populated destination.
func (c *Client) Extract(ctx context.Context, gmaPath, destDir string) error {
	if destDir == "" {
		return errors.New("destination directory required")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	staging := destDir + stagingSuffix
	if err := c.fs.RemoveAll(staging); err != nil {
		return fmt.Errorf("cannot clear staging dir: %w", err)
	}
	if err := c.fs.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("cannot create staging dir: %w", err)
	}

	args := []string{"extract", "-file", gmaPath, "-out", staging}

	output, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		c.cleanup(staging)

		return fmt.Errorf("gmad extract failed: %w: %s", err, strings.TrimSpace(output))
	}

	empty, err := afero.IsEmpty(c.fs, staging)
	if err != nil {
		c.cleanup(staging)

		return fmt.Errorf("cannot inspect extracted output: %w", err)
	}
	if empty {
		c.cleanup(staging)

		return fmt.Errorf("gmad extract produced no output: %s", strings.TrimSpace(output))
	}

	if err := c.fs.RemoveAll(destDir); err != nil {
		c.cleanup(staging)

		return fmt.Errorf("cannot clear destination: %w", err)
	}
	if err := c.fs.Rename(staging, destDir); err != nil {
		c.cleanup(staging)

		return fmt.Errorf("cannot move extracted output into place: %w", err)
	}

	return nil
}

func (c *Client) cleanup(staging string) {
	if err := c.fs.RemoveAll(staging); err != nil {
		c.log.Warn("Cannot remove staging dir", slog.String("path", staging), slog.Any("error", err))
	}
}

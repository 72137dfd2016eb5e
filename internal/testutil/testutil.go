// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trly/nisclient/internal/config"
	"github.com/trly/nisclient/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := &testHandler{t: t, opts: opts}
	return log.NewSlogAdapter(slog.New(handler))
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithRenderRoot sets a custom staging root.
func WithRenderRoot(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.RenderRoot = dir
	}
}

// WithOutputFormat sets the output format.
func WithOutputFormat(format string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.OutputFormat = format
	}
}

// WithRPCBindReleases sets the RedHat releases that require rpcbind.
func WithRPCBindReleases(releases ...string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.RedHatRPCBindReleases = releases
	}
}

// NewMockConfig creates a config provider for testing with optional customizations.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	t.Helper()

	cfg := &config.Settings{
		OutputFormat:          config.DefaultOutputFormat,
		RenderRoot:            filepath.Join(t.TempDir(), "rendered"),
		Verbose:               true,
		RedHatRPCBindReleases: config.DefaultRedHatRPCBindReleases(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t    testing.TB
	opts *slog.HandlerOptions
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	h.t.Logf("[%s] %s", record.Level.String(), record.Message)
	return nil
}

func (h *testHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}

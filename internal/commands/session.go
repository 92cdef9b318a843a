package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/activity"
	"github.com/cleared-dev/budget/internal/config"
	"github.com/cleared-dev/budget/internal/ledger"
	"github.com/cleared-dev/budget/internal/render"
)

// options holds the persistent root flags.
type options struct {
	configPath string
	dataFile   string
	verbose    bool
}

// session is the per-invocation state shared by ledger commands.
type session struct {
	cfg      *config.Config
	baseDir  string
	dataPath string
	logger   *slog.Logger
	renderer *render.Renderer
	out      io.Writer
	now      func() time.Time
}

func newSession(cmd *cobra.Command, opts *options) (*session, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfgPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}
	baseDir := filepath.Dir(cfgPath)

	dataPath := cfg.ResolveDataFile(baseDir)
	if opts.dataFile != "" {
		if dataPath, err = filepath.Abs(opts.dataFile); err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
	}
	logger.Debug("session", "config", cfgPath, "data_file", dataPath, "currency", cfg.Currency)

	return &session{
		cfg:      cfg,
		baseDir:  baseDir,
		dataPath: dataPath,
		logger:   logger,
		renderer: render.New(cfg.Currency),
		out:      cmd.OutOrStdout(),
		now:      time.Now,
	}, nil
}

// load reads the ledger file; a missing file is an empty ledger.
func (s *session) load() (*ledger.Ledger, error) {
	l, err := ledger.LoadOrNew(s.dataPath)
	if err != nil {
		return nil, describe(err)
	}
	s.logger.Debug("loaded ledger", "path", s.dataPath, "entries", l.Len(), "balance", l.Balance().String())
	if drift := l.Drift(); !drift.IsZero() {
		s.logger.Warn("balance line does not match entries; using entries total",
			"path", s.dataPath,
			"stored", l.Balance().Add(drift).String(),
			"computed", l.Balance().String())
	}
	return l, nil
}

// mutate loads the ledger, applies fn, saves, records activity and
// re-renders. Nothing is saved when fn fails.
func (s *session) mutate(fn func(l *ledger.Ledger) (activity.Entry, error)) error {
	l, err := s.load()
	if err != nil {
		return err
	}

	entry, err := fn(l)
	if err != nil {
		return describe(err)
	}

	if err := ledger.Save(s.dataPath, l); err != nil {
		return describe(err)
	}
	s.logger.Debug("saved ledger", "path", s.dataPath, "entries", l.Len())

	entry.Timestamp = s.now().UTC()
	entry.Balance = l.Balance()
	s.record(entry)

	return s.renderer.Ledger(s.out, l)
}

func (s *session) record(e activity.Entry) {
	if !s.cfg.Activity.Enabled {
		return
	}
	dir := s.cfg.ActivityDir(s.baseDir)
	if err := activity.Append(dir, []activity.Entry{e}); err != nil {
		s.logger.Warn("failed to write activity log", "dir", dir, "error", err)
	}
}

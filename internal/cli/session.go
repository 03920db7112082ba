package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/logging"
	"github.com/sandeepkv93/todolist/internal/notify"
	"github.com/sandeepkv93/todolist/internal/repository"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/store"
)

// session is one process's view of the store: config, logger, backend and
// the repository bound to them.
type session struct {
	cfg      config.RuntimeConfig
	log      *zap.Logger
	backend  storage.Backend
	repo     *repository.Repository
	signals  *notify.Buffer
	closeLog func() error
}

func openSession(ctx context.Context) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.New(cfg.Log, nil)
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("opening %s storage at %s: %w", cfg.Storage.Driver, cfg.Storage.Path, err)
	}
	log = log.With(zap.String("driver", cfg.Storage.Driver))
	log.Debug("session opened", zap.String("path", cfg.Storage.Path), zap.String("config", cfg.ConfigFile))

	signals := notify.NewBuffer(0)
	codec := store.NewCodec(backend, store.WithLogger(log))
	sink := notify.Multi(signals, notify.Func(func(sig notify.Signal) {
		if sig.IsError() {
			return
		}
		log.Debug("repository signal", zap.String("op", string(sig.Op)), zap.String("signal", sig.Message()))
	}))
	repo := repository.New(ctx, codec, repository.WithLogger(log), repository.WithSink(sink))
	return &session{
		cfg:      cfg,
		log:      log,
		backend:  backend,
		repo:     repo,
		signals:  signals,
		closeLog: closeLog,
	}, nil
}

// openStore opens a session for a subcommand. Unlike the UI, a subcommand
// refuses to work on defaults when the stored document could not be read,
// so that a later save cannot overwrite it.
func openStore(ctx context.Context) (*session, error) {
	s, err := openSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.flush(io.Discard); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// flush writes pending success messages to w and returns the first failure.
func (s *session) flush(w io.Writer) error {
	var failed error
	for _, sig := range s.signals.Drain() {
		if sig.IsError() {
			if failed == nil {
				failed = fmt.Errorf("%s: %w", sig.Message(), sig.Err)
			}
			continue
		}
		fmt.Fprintln(w, sig.Message())
	}
	return failed
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		s.log.Warn("close storage", zap.Error(err))
	}
	_ = s.closeLog()
}

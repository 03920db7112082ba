// Package store persists the task store as a single versioned JSON document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/storage"
	"go.uber.org/zap"
)

// Key is the namespaced key the document lives under.
const Key = "todolist-app-data"

// SchemaVersion is written into every saved document. Documents without a
// version field predate versioning and are read as version 1.
const SchemaVersion = 1

var (
	ErrLoadFailed         = errors.New("store: load failed")
	ErrSaveFailed         = errors.New("store: save failed")
	ErrUnsupportedVersion = errors.New("store: unsupported schema version")
)

type document struct {
	Version    int              `json:"version"`
	Tasks      []model.Task     `json:"tasks"`
	Categories []model.Category `json:"categories"`
	Settings   *model.Settings  `json:"settings"`
}

type Codec struct {
	backend storage.Backend
	key     string
	log     *zap.Logger
}

type Option func(*Codec)

func WithLogger(log *zap.Logger) Option {
	return func(c *Codec) {
		if log != nil {
			c.log = log
		}
	}
}

func NewCodec(backend storage.Backend, opts ...Option) *Codec {
	c := &Codec{backend: backend, key: Key, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the persisted store. A missing document yields the default
// store with a nil error; an unreadable or incompatible one yields the default
// store together with an error wrapping ErrLoadFailed.
func (c *Codec) Load(ctx context.Context) (model.Store, error) {
	raw, err := c.backend.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.DefaultStore(), nil
		}
		c.log.Error("load store", zap.String("key", c.key), zap.Error(err))
		return model.DefaultStore(), fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	s, err := Decode(raw)
	if err != nil {
		c.log.Warn("discarding unreadable store", zap.String("key", c.key), zap.Int("bytes", len(raw)), zap.Error(err))
		return model.DefaultStore(), fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return s, nil
}

func (c *Codec) Save(ctx context.Context, s model.Store) error {
	raw, err := Encode(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := c.backend.Put(ctx, c.key, raw); err != nil {
		c.log.Error("save store", zap.String("key", c.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	c.log.Debug("store saved", zap.String("key", c.key), zap.Int("tasks", len(s.Tasks)), zap.Int("categories", len(s.Categories)))
	return nil
}

// Reset overwrites the document with the default store. The default store is
// returned even when the write fails.
func (c *Codec) Reset(ctx context.Context) (model.Store, error) {
	def := model.DefaultStore()
	if err := c.Save(ctx, def); err != nil {
		return def, err
	}
	c.log.Info("store reset", zap.String("key", c.key))
	return def, nil
}

func Encode(s model.Store) ([]byte, error) {
	s = s.Clone()
	settings := s.Settings
	return json.Marshal(document{
		Version:    SchemaVersion,
		Tasks:      s.Tasks,
		Categories: s.Categories,
		Settings:   &settings,
	})
}

// Decode parses and validates a document. Unknown fields are rejected so that a
// structurally different document is never half-read.
func Decode(raw []byte) (model.Store, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Store{}, errors.New("store: empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return model.Store{}, fmt.Errorf("store: decode: %w", err)
	}
	if dec.More() {
		return model.Store{}, errors.New("store: trailing data after document")
	}
	version := doc.Version
	if version == 0 {
		version = 1
	}
	if version != SchemaVersion {
		return model.Store{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Tasks == nil || doc.Categories == nil || doc.Settings == nil {
		return model.Store{}, errors.New("store: document is missing tasks, categories or settings")
	}
	s := model.Store{
		Tasks:      doc.Tasks,
		Categories: doc.Categories,
		Settings:   *doc.Settings,
	}
	if err := s.Validate(); err != nil {
		return model.Store{}, fmt.Errorf("store: invalid document: %w", err)
	}
	return s, nil
}

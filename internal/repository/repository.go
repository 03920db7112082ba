// Package repository owns the in-memory task store together with the active
// filters and sort, and persists every store mutation through a codec.
//
// A Repository is driven by a single controller and does no locking.
package repository

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/notify"
	"github.com/sandeepkv93/todolist/internal/query"
	"go.uber.org/zap"
)

// Codec loads and saves the whole store.
type Codec interface {
	Load(ctx context.Context) (model.Store, error)
	Save(ctx context.Context, s model.Store) error
	Reset(ctx context.Context) (model.Store, error)
}

type Repository struct {
	codec Codec
	log   *zap.Logger
	sink  notify.Sink
	now   func() time.Time
	newID func() string

	store   model.Store
	filters model.FilterOptions
	sortBy  model.SortOption
}

type Option func(*Repository)

func WithLogger(log *zap.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

func WithSink(sink notify.Sink) Option {
	return func(r *Repository) {
		if sink != nil {
			r.sink = sink
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// New loads the store through codec. A load failure is reported through the
// sink and the repository starts from the default store.
func New(ctx context.Context, codec Codec, opts ...Option) *Repository {
	r := &Repository{
		codec: codec,
		log:   zap.NewNop(),
		sink:  notify.Discard,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	s, err := codec.Load(ctx)
	if err != nil {
		r.log.Error("load store", zap.Error(err))
		r.emit(notify.Signal{Op: notify.OpLoadFailed, Entity: notify.EntityStore, Level: notify.LevelError, Err: err})
	}
	r.store = s.Clone()
	r.sortBy = r.store.Settings.DefaultSort
	r.log.Debug("repository ready",
		zap.Int("tasks", len(r.store.Tasks)),
		zap.Int("categories", len(r.store.Categories)),
		zap.String("sort", string(r.sortBy)),
	)
	return r
}

func (r *Repository) emit(sig notify.Signal) {
	if sig.At.IsZero() {
		sig.At = r.now()
	}
	if sig.Level == "" {
		sig.Level = notify.LevelSuccess
	}
	r.sink.Notify(sig)
}

// commit swaps in next and persists it. A failed save leaves next in place.
func (r *Repository) commit(ctx context.Context, op string, next model.Store) bool {
	r.store = next
	if err := r.codec.Save(ctx, r.store); err != nil {
		r.log.Error("persist store", zap.String("op", op), zap.Error(err))
		r.emit(notify.Signal{Op: notify.OpSaveFailed, Entity: notify.EntityStore, Level: notify.LevelError, Err: err})
		return false
	}
	return true
}

func (r *Repository) uniqueID(taken func(string) bool) string {
	for {
		id := r.newID()
		if id != "" && !taken(id) {
			return id
		}
		r.log.Warn("regenerating colliding id", zap.String("id", id))
	}
}

func (r *Repository) stamp(created time.Time) time.Time {
	now := r.now()
	if now.Before(created) {
		return created
	}
	return now
}

func (r *Repository) taskIndex(id string) int {
	return slices.IndexFunc(r.store.Tasks, func(t model.Task) bool { return t.ID == id })
}

func (r *Repository) categoryIndex(id string) int {
	return slices.IndexFunc(r.store.Categories, func(c model.Category) bool { return c.ID == id })
}

// Snapshot returns a deep copy of the whole store.
func (r *Repository) Snapshot() model.Store {
	return r.store.Clone()
}

func (r *Repository) Tasks() []model.Task {
	return r.store.Clone().Tasks
}

func (r *Repository) Categories() []model.Category {
	return slices.Clone(r.store.Categories)
}

func (r *Repository) Settings() model.Settings {
	return r.store.Settings
}

func (r *Repository) Filters() model.FilterOptions {
	return r.filters.Clone()
}

func (r *Repository) SortBy() model.SortOption {
	return r.sortBy
}

// FilteredTasks is the displayed task list under the active filters and sort.
func (r *Repository) FilteredTasks() []model.Task {
	return query.FilterAndSort(r.store.Tasks, r.filters, r.sortBy)
}

func (r *Repository) Statistics() model.Statistics {
	return query.GenerateStatistics(r.store.Tasks)
}

func (r *Repository) Task(id string) (model.Task, bool) {
	i := r.taskIndex(id)
	if i < 0 {
		return model.Task{}, false
	}
	return r.store.Tasks[i].Clone(), true
}

func (r *Repository) Category(id string) (model.Category, bool) {
	i := r.categoryIndex(id)
	if i < 0 {
		return model.Category{}, false
	}
	return r.store.Categories[i], true
}

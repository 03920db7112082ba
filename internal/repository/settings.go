package repository

import (
	"context"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/notify"
	"go.uber.org/zap"
)

// UpdateSettings replaces the settings. When the default sort differs from
// the active sort, the active sort follows it.
func (r *Repository) UpdateSettings(ctx context.Context, s model.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	next := r.store.Clone()
	next.Settings = s
	r.commit(ctx, "update settings", next)
	if s.DefaultSort != r.sortBy {
		r.sortBy = s.DefaultSort
	}
	r.emit(notify.Signal{Op: notify.OpUpdated, Entity: notify.EntitySettings})
	return nil
}

// ResetAllData restores the default store and clears filters.
func (r *Repository) ResetAllData(ctx context.Context) {
	s, err := r.codec.Reset(ctx)
	r.store = s.Clone()
	r.filters = model.FilterOptions{}
	r.sortBy = r.store.Settings.DefaultSort
	if err != nil {
		r.log.Error("reset store", zap.Error(err))
		r.emit(notify.Signal{Op: notify.OpSaveFailed, Entity: notify.EntityStore, Level: notify.LevelError, Err: err})
		return
	}
	r.log.Info("all data reset")
	r.emit(notify.Signal{Op: notify.OpReset, Entity: notify.EntityStore})
}

// SetFilters merges patch into the active filters.
func (r *Repository) SetFilters(patch model.FilterPatch) {
	r.filters = patch.Apply(r.filters).Clone()
}

func (r *Repository) ClearFilters() {
	r.filters = model.FilterOptions{}
}

// SetSortBy changes the active sort only; settings are untouched.
func (r *Repository) SetSortBy(sortBy model.SortOption) {
	r.sortBy = sortBy
}

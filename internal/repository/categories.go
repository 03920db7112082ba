package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/notify"
	"go.uber.org/zap"
)

func (r *Repository) AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	if err := in.Validate(); err != nil {
		return model.Category{}, err
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = model.DefaultCategoryColor
	}
	cat := model.Category{
		ID: r.uniqueID(func(id string) bool {
			return r.categoryIndex(id) >= 0
		}),
		Name:  strings.TrimSpace(in.Name),
		Color: color,
	}

	next := r.store.Clone()
	next.Categories = append(next.Categories, cat)
	r.commit(ctx, "add category", next)
	r.emit(notify.Signal{Op: notify.OpAdded, Entity: notify.EntityCategory, Name: cat.Name})
	return cat, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, cat model.Category) (bool, error) {
	i := r.categoryIndex(cat.ID)
	if i < 0 {
		r.emit(notify.Signal{Op: notify.OpNotFound, Entity: notify.EntityCategory, Name: cat.Name, Level: notify.LevelInfo})
		return false, nil
	}
	cat.Name = strings.TrimSpace(cat.Name)
	if err := cat.Validate(); err != nil {
		return false, err
	}
	if strings.TrimSpace(cat.Color) == "" {
		cat.Color = r.store.Categories[i].Color
	}

	next := r.store.Clone()
	next.Categories[i] = cat
	r.commit(ctx, "update category", next)
	r.emit(notify.Signal{Op: notify.OpUpdated, Entity: notify.EntityCategory, Name: cat.Name})
	return true, nil
}

// DeleteCategory removes the category and detaches every task referencing it
// in the same state swap. An active category filter on it is cleared.
func (r *Repository) DeleteCategory(ctx context.Context, id string) bool {
	i := r.categoryIndex(id)
	name := ""
	if i >= 0 {
		name = r.store.Categories[i].Name
		next := r.store.Clone()
		detached := 0
		for j := range next.Tasks {
			if next.Tasks[j].InCategory(id) {
				next.Tasks[j].CategoryID = nil
				next.Tasks[j].UpdatedAt = r.stamp(next.Tasks[j].CreatedAt)
				detached++
			}
		}
		next.Categories = slices.Delete(next.Categories, i, i+1)
		r.commit(ctx, "delete category", next)
		if r.filters.CategoryID != nil && *r.filters.CategoryID == id {
			r.filters.CategoryID = nil
		}
		r.log.Info("category deleted", zap.String("id", id), zap.Int("detached_tasks", detached))
	}
	r.emit(notify.Signal{Op: notify.OpDeleted, Entity: notify.EntityCategory, Name: name})
	return i >= 0
}

// CategoryByName finds a category by case-insensitive name, or by id.
func (r *Repository) CategoryByName(name string) (model.Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range r.store.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return r.Category(name)
}

package store

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/storage"
	"pgregory.net/rapid"
)

func genText(t *rapid.T, label string, maxLen int) string {
	return rapid.StringMatching(fmt.Sprintf(`[a-zA-Z0-9 #.-]{0,%d}`, maxLen)).Draw(t, label)
}

func genStore(t *rapid.T) model.Store {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	nCats := rapid.IntRange(0, 5).Draw(t, "nCats")
	cats := make([]model.Category, nCats)
	for i := range cats {
		cats[i] = model.Category{
			ID:    fmt.Sprintf("cat-%d", i),
			Name:  "c" + genText(t, "catName", 12),
			Color: genText(t, "color", 8),
		}
	}
	nTasks := rapid.IntRange(0, 20).Draw(t, "nTasks")
	tasks := make([]model.Task, nTasks)
	for i := range tasks {
		created := base.Add(time.Duration(rapid.Int64Range(0, 1e15).Draw(t, "created")))
		var cat *string
		if nCats > 0 && rapid.Bool().Draw(t, "hasCat") {
			cat = model.CategoryRef(cats[rapid.IntRange(0, nCats-1).Draw(t, "catIdx")].ID)
		}
		tasks[i] = model.Task{
			ID:          fmt.Sprintf("task-%d", i),
			Title:       "t" + genText(t, "title", 30),
			Description: genText(t, "desc", 60),
			Status:      rapid.SampledFrom(model.Statuses).Draw(t, "status"),
			Priority:    rapid.SampledFrom(model.Priorities).Draw(t, "priority"),
			CategoryID:  cat,
			CreatedAt:   created,
			UpdatedAt:   created.Add(time.Duration(rapid.Int64Range(0, 1e12).Draw(t, "delta"))),
		}
	}
	return model.Store{
		Tasks:      tasks,
		Categories: cats,
		Settings: model.Settings{
			Theme:       rapid.SampledFrom([]model.Theme{model.ThemeLight, model.ThemeDark}).Draw(t, "theme"),
			DefaultSort: rapid.SampledFrom(model.SortOptions).Draw(t, "sort"),
		},
	}
}

// Property: load(save(S)) == S for any well-formed store.
func TestProperty_CodecRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genStore(t)
		codec := NewCodec(storage.NewMemoryBackend())
		ctx := context.Background()
		if err := codec.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := codec.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !reflect.DeepEqual(got, s) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, s)
		}
	})
}

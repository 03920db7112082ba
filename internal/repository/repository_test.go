package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/notify"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupRepo(t *testing.T) (*Repository, *store.Codec, *notify.Buffer) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	t.Cleanup(func() { _ = backend.Close() })
	codec := store.NewCodec(backend)
	buf := notify.NewBuffer(0)
	clock := &fakeClock{t: time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)}
	repo := New(t.Context(), codec, WithSink(buf), WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	return repo, codec, buf
}

func lastMessage(t *testing.T, buf *notify.Buffer) string {
	t.Helper()
	sig, ok := buf.Last()
	if !ok {
		t.Fatal("expected a signal")
	}
	return sig.Message()
}

func TestNewStartsFromDefaults(t *testing.T) {
	repo, _, buf := setupRepo(t)
	if len(repo.Tasks()) != 0 {
		t.Fatalf("expected no tasks, got %d", len(repo.Tasks()))
	}
	if got := len(repo.Categories()); got != 3 {
		t.Fatalf("expected 3 default categories, got %d", got)
	}
	if repo.SortBy() != model.SortByDate {
		t.Fatalf("unexpected initial sort: %s", repo.SortBy())
	}
	if _, ok := buf.Last(); ok {
		t.Fatal("missing document should not signal")
	}
}

func TestAddTaskUpdatesStatsAndPersists(t *testing.T) {
	repo, codec, buf := setupRepo(t)
	ctx := t.Context()

	before := repo.Statistics()
	task, err := repo.AddTask(ctx, model.TaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Status != model.StatusNotStarted || task.Priority != model.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("expected equal timestamps: %+v", task)
	}
	after := repo.Statistics()
	if after.Total != before.Total+1 || after.ByStatus[model.StatusNotStarted] != before.ByStatus[model.StatusNotStarted]+1 {
		t.Fatalf("unexpected stats after add: %+v", after)
	}
	if msg := lastMessage(t, buf); msg != `Task "Buy milk" added` {
		t.Fatalf("unexpected message: %q", msg)
	}

	loaded, err := codec.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].ID != task.ID {
		t.Fatalf("task not persisted: %+v", loaded.Tasks)
	}
}

func TestAddTaskPrependsAndRejectsInvalid(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := t.Context()

	first, _ := repo.AddTask(ctx, model.TaskInput{Title: "first"})
	second, _ := repo.AddTask(ctx, model.TaskInput{Title: "second"})
	tasks := repo.Tasks()
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Fatalf("expected newest first: %v", tasks)
	}

	if _, err := repo.AddTask(ctx, model.TaskInput{Title: "  "}); !errors.Is(err, model.ErrEmptyTitle) {
		t.Fatalf("expected empty title error, got %v", err)
	}
	if _, err := repo.AddTask(ctx, model.TaskInput{Title: "x", Status: "blocked"}); !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
	if len(repo.Tasks()) != 2 {
		t.Fatal("invalid input must not change state")
	}
}

func TestUniqueIDRegeneratesOnCollision(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ids := []string{"dup", "dup", "fresh"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	repo := New(t.Context(), store.NewCodec(backend), WithIDGenerator(gen))
	a, _ := repo.AddTask(t.Context(), model.TaskInput{Title: "a"})
	b, _ := repo.AddTask(t.Context(), model.TaskInput{Title: "b"})
	if a.ID != "dup" || b.ID != "fresh" {
		t.Fatalf("unexpected ids: %q %q", a.ID, b.ID)
	}
}

func TestUnknownCategoryRejected(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := t.Context()

	if _, err := repo.AddTask(ctx, model.TaskInput{Title: "lost", CategoryID: model.CategoryRef("nope")}); !errors.Is(err, model.ErrUnknownCategory) {
		t.Fatalf("expected unknown category error, got %v", err)
	}
	if len(repo.Tasks()) != 0 {
		t.Fatalf("expected no task added, got %d", len(repo.Tasks()))
	}

	cat, _ := repo.AddCategory(ctx, model.CategoryInput{Name: "Temp"})
	task, err := repo.AddTask(ctx, model.TaskInput{Title: "kept"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	repo.DeleteCategory(ctx, cat.ID)

	stale := task
	stale.CategoryID = model.CategoryRef(cat.ID)
	if ok, err := repo.UpdateTask(ctx, stale); ok || !errors.Is(err, model.ErrUnknownCategory) {
		t.Fatalf("expected unknown category on update, got ok=%v err=%v", ok, err)
	}
	if got, _ := repo.Task(task.ID); got.CategoryID != nil {
		t.Fatalf("expected task left uncategorized, got %v", *got.CategoryID)
	}
	if st := repo.Statistics(); len(st.ByCategory) != 0 {
		t.Fatalf("expected no category counts, got %v", st.ByCategory)
	}
}

func TestUpdateTaskKeepsCreatedAt(t *testing.T) {
	repo, _, buf := setupRepo(t)
	ctx := t.Context()
	task, _ := repo.AddTask(ctx, model.TaskInput{Title: "draft"})

	edited := task
	edited.Title = "final"
	edited.CreatedAt = time.Time{}
	edited.Status = model.StatusInProgress
	ok, err := repo.UpdateTask(ctx, edited)
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	got, _ := repo.Task(task.ID)
	if !got.CreatedAt.Equal(task.CreatedAt) || !got.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("unexpected timestamps: %+v", got)
	}
	if got.Title != "final" || got.Status != model.StatusInProgress {
		t.Fatalf("update not applied: %+v", got)
	}
	if msg := lastMessage(t, buf); msg != `Task "final" updated` {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestUpdateUnknownTaskIsBenign(t *testing.T) {
	repo, _, buf := setupRepo(t)
	ok, err := repo.UpdateTask(t.Context(), model.Task{ID: "missing", Title: "ghost"})
	if ok || err != nil {
		t.Fatalf("expected benign miss, ok=%v err=%v", ok, err)
	}
	sig, _ := buf.Last()
	if sig.Op != notify.OpNotFound || sig.IsError() {
		t.Fatalf("unexpected signal: %+v", sig)
	}
}

func TestDeleteUnknownTaskUsesUnknownLabel(t *testing.T) {
	repo, _, buf := setupRepo(t)
	if repo.DeleteTask(t.Context(), "missing") {
		t.Fatal("expected false for unknown id")
	}
	if msg := lastMessage(t, buf); msg != `Task "Unknown" deleted` {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestDeleteCategoryDetachesTasks(t *testing.T) {
	repo, _, buf := setupRepo(t)
	ctx := t.Context()

	inWork, _ := repo.AddTask(ctx, model.TaskInput{Title: "report", CategoryID: model.CategoryRef("1")})
	inHome, _ := repo.AddTask(ctx, model.TaskInput{Title: "dishes", CategoryID: model.CategoryRef("2")})
	repo.SetFilters(model.FilterPatch{SetCategoryID: true, CategoryID: model.CategoryRef("1")})

	if !repo.DeleteCategory(ctx, "1") {
		t.Fatal("expected category to be deleted")
	}
	if _, ok := repo.Category("1"); ok {
		t.Fatal("category still present")
	}
	detached, _ := repo.Task(inWork.ID)
	if detached.CategoryID != nil {
		t.Fatalf("task still references deleted category: %+v", detached)
	}
	if !detached.UpdatedAt.After(inWork.UpdatedAt) {
		t.Fatal("detached task should be restamped")
	}
	kept, _ := repo.Task(inHome.ID)
	if kept.CategoryID == nil || *kept.CategoryID != "2" {
		t.Fatalf("unrelated task changed: %+v", kept)
	}
	if repo.Filters().CategoryID != nil {
		t.Fatal("expected category filter to be cleared")
	}
	if _, ok := repo.Statistics().ByCategory["1"]; ok {
		t.Fatal("stats still count deleted category")
	}
	if msg := lastMessage(t, buf); msg != `Category "Work" deleted` {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := t.Context()

	cat, err := repo.AddCategory(ctx, model.CategoryInput{Name: "Errands"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if cat.Color != model.DefaultCategoryColor {
		t.Fatalf("expected default color, got %q", cat.Color)
	}
	if _, err := repo.AddCategory(ctx, model.CategoryInput{Name: ""}); !errors.Is(err, model.ErrEmptyCategoryName) {
		t.Fatalf("expected empty name error, got %v", err)
	}

	cat.Name = "Chores"
	if ok, err := repo.UpdateCategory(ctx, cat); !ok || err != nil {
		t.Fatalf("update category: ok=%v err=%v", ok, err)
	}
	found, ok := repo.CategoryByName("chores")
	if !ok || found.ID != cat.ID {
		t.Fatalf("lookup by name failed: %+v", found)
	}
	if ok, _ := repo.UpdateCategory(ctx, model.Category{ID: "nope", Name: "x"}); ok {
		t.Fatal("expected miss for unknown category")
	}

	found.Name = "  Spaced  "
	if _, err := repo.UpdateCategory(ctx, found); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got, _ := repo.Category(cat.ID); got.Name != "Spaced" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	found.Name = "   "
	if _, err := repo.UpdateCategory(ctx, found); !errors.Is(err, model.ErrEmptyCategoryName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
}

func TestUpdateSettingsSwitchesActiveSort(t *testing.T) {
	repo, _, buf := setupRepo(t)
	ctx := t.Context()

	repo.SetSortBy(model.SortByStatus)
	if repo.Settings().DefaultSort != model.SortByDate {
		t.Fatal("SetSortBy must not touch settings")
	}
	err := repo.UpdateSettings(ctx, model.Settings{Theme: model.ThemeDark, DefaultSort: model.SortByPriority})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if repo.SortBy() != model.SortByPriority {
		t.Fatalf("active sort = %s, want priority", repo.SortBy())
	}
	if msg := lastMessage(t, buf); msg != "Settings updated" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if err := repo.UpdateSettings(ctx, model.Settings{Theme: "sepia", DefaultSort: model.SortByDate}); !errors.Is(err, model.ErrInvalidTheme) {
		t.Fatalf("expected invalid theme, got %v", err)
	}
}

func TestResetAllData(t *testing.T) {
	repo, codec, buf := setupRepo(t)
	ctx := t.Context()

	_, _ = repo.AddTask(ctx, model.TaskInput{Title: "temp"})
	_ = repo.UpdateSettings(ctx, model.Settings{Theme: model.ThemeDark, DefaultSort: model.SortByStatus})
	done := model.StatusDone
	repo.SetFilters(model.FilterPatch{SetStatus: true, Status: &done, SetSearchTerm: true, SearchTerm: "x"})

	repo.ResetAllData(ctx)
	if len(repo.Tasks()) != 0 || !repo.Filters().IsZero() || repo.SortBy() != model.SortByDate {
		t.Fatalf("reset incomplete: tasks=%d filters=%+v sort=%s", len(repo.Tasks()), repo.Filters(), repo.SortBy())
	}
	if msg := lastMessage(t, buf); msg != "All data has been reset" {
		t.Fatalf("unexpected message: %q", msg)
	}

	loaded, err := codec.Load(ctx)
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if len(loaded.Tasks) != 0 || loaded.Settings != model.DefaultSettings() || len(loaded.Categories) != 3 {
		t.Fatalf("persisted store is not the default: %+v", loaded)
	}
}

type failingCodec struct {
	Codec
	saveErr error
	loadErr error
}

func (f failingCodec) Load(ctx context.Context) (model.Store, error) {
	if f.loadErr != nil {
		return model.DefaultStore(), f.loadErr
	}
	return f.Codec.Load(ctx)
}

func (f failingCodec) Save(ctx context.Context, s model.Store) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Codec.Save(ctx, s)
}

func TestSaveFailureKeepsMutationAndSignals(t *testing.T) {
	buf := notify.NewBuffer(0)
	codec := failingCodec{Codec: store.NewCodec(storage.NewMemoryBackend()), saveErr: store.ErrSaveFailed}
	repo := New(t.Context(), codec, WithSink(buf))

	task, err := repo.AddTask(t.Context(), model.TaskInput{Title: "kept"})
	if err != nil {
		t.Fatalf("save failure must not surface as a validation error: %v", err)
	}
	if _, ok := repo.Task(task.ID); !ok {
		t.Fatal("in-memory mutation should stand")
	}
	errs := buf.Errors()
	if len(errs) != 1 || errs[0].Message() != "Failed to save data to local storage" || !errors.Is(errs[0].Err, store.ErrSaveFailed) {
		t.Fatalf("unexpected error signals: %+v", errs)
	}
}

func TestLoadFailureSignalsAndUsesDefaults(t *testing.T) {
	buf := notify.NewBuffer(0)
	codec := failingCodec{Codec: store.NewCodec(storage.NewMemoryBackend()), loadErr: store.ErrLoadFailed}
	repo := New(t.Context(), codec, WithSink(buf))
	if len(repo.Categories()) != 3 {
		t.Fatal("expected default categories")
	}
	sig, ok := buf.Last()
	if !ok || sig.Op != notify.OpLoadFailed {
		t.Fatalf("expected load failure signal, got %+v", sig)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := t.Context()
	task, _ := repo.AddTask(ctx, model.TaskInput{Title: "original", CategoryID: model.CategoryRef("1")})

	tasks := repo.Tasks()
	tasks[0].Title = "mutated"
	*tasks[0].CategoryID = "3"
	filtered := repo.FilteredTasks()
	filtered[0].Title = "mutated"
	cats := repo.Categories()
	cats[0].Name = "mutated"

	got, _ := repo.Task(task.ID)
	if got.Title != "original" || *got.CategoryID != "1" {
		t.Fatalf("repository state leaked: %+v", got)
	}
	if c, _ := repo.Category("1"); c.Name != "Work" {
		t.Fatalf("category state leaked: %+v", c)
	}

	snap := repo.Snapshot()
	_, _ = repo.AddTask(ctx, model.TaskInput{Title: "later"})
	if len(snap.Tasks) != 1 {
		t.Fatal("snapshot changed after a later mutation")
	}
}

func TestFilteredTasksFollowsFiltersAndSort(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := t.Context()
	_, _ = repo.AddTask(ctx, model.TaskInput{Title: "low", Priority: model.PriorityLow})
	high, _ := repo.AddTask(ctx, model.TaskInput{Title: "high", Priority: model.PriorityHigh})
	_, _ = repo.AddTask(ctx, model.TaskInput{Title: "done", Priority: model.PriorityHigh, Status: model.StatusDone})

	repo.SetSortBy(model.SortByPriority)
	todo := model.StatusNotStarted
	repo.SetFilters(model.FilterPatch{SetStatus: true, Status: &todo})
	got := repo.FilteredTasks()
	if len(got) != 2 || got[0].ID != high.ID {
		t.Fatalf("unexpected filtered tasks: %+v", got)
	}

	ok, err := repo.SetTaskStatus(ctx, high.ID, model.StatusDone)
	if !ok || err != nil {
		t.Fatalf("set status: ok=%v err=%v", ok, err)
	}
	if len(repo.FilteredTasks()) != 1 {
		t.Fatal("status change should drop the task from the filtered view")
	}
	if got := len(repo.TasksInCategory("1")); got != 0 {
		t.Fatalf("expected no tasks in category 1, got %d", got)
	}

	repo.ClearFilters()
	if len(repo.FilteredTasks()) != 3 {
		t.Fatal("expected all tasks after clearing filters")
	}
}

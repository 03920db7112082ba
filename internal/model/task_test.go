package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Implement model validation",
		Status:    StatusInProgress,
		Priority:  PriorityHigh,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateUpdatedBeforeCreated(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Time travel",
		Status:    StatusDone,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now.Add(-time.Minute),
	}
	if err := task.Validate(); !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("expected ErrInvalidDates, got: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Bad status",
		Status:    Status("Invalid"),
		Priority:  PriorityLow,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusNotStarted
	task.Priority = Priority("Bad")
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestTaskInputDefaultsAndValidation(t *testing.T) {
	in := TaskInput{Title: "Buy milk"}.WithDefaults()
	if in.Status != StatusNotStarted || in.Priority != PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	in.Title = "   "
	if err := in.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestParseStatusAcceptsLabels(t *testing.T) {
	cases := map[string]Status{
		"done":        StatusDone,
		"In Progress": StatusInProgress,
		"not-started": StatusNotStarted,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q = %q, want %q", raw, got, want)
		}
	}
	if _, err := ParseStatus("blocked"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestRanksAndCycles(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() || PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Fatal("expected high < medium < low priority ranks")
	}
	if StatusNotStarted.Rank() >= StatusInProgress.Rank() || StatusInProgress.Rank() >= StatusDone.Rank() {
		t.Fatal("expected not-started < in-progress < done status ranks")
	}
	if StatusDone.Next() != StatusNotStarted {
		t.Fatalf("expected done to cycle back, got %q", StatusDone.Next())
	}
	if SortByStatus.Next() != SortByDate {
		t.Fatalf("expected status sort to cycle back, got %q", SortByStatus.Next())
	}
}

func TestTaskCloneDetachesCategoryPointer(t *testing.T) {
	task := Task{ID: "a", CategoryID: CategoryRef("1")}
	clone := task.Clone()
	*clone.CategoryID = "2"
	if *task.CategoryID != "1" {
		t.Fatalf("clone mutated source category: %q", *task.CategoryID)
	}
	if CategoryRef("  ") != nil {
		t.Fatal("expected blank category ref to be nil")
	}
}

func TestDefaultStoreIsValid(t *testing.T) {
	s := DefaultStore()
	if len(s.Tasks) != 0 || len(s.Categories) != 3 {
		t.Fatalf("unexpected default store: %+v", s)
	}
	if s.Settings != (Settings{Theme: ThemeLight, DefaultSort: SortByDate}) {
		t.Fatalf("unexpected default settings: %+v", s.Settings)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("default store invalid: %v", err)
	}
}

func TestStatisticsRates(t *testing.T) {
	st := Statistics{Total: 3, ByStatus: map[Status]int{StatusDone: 2, StatusInProgress: 1}}
	if st.CompletionRate() != 67 || st.InProgressRate() != 33 {
		t.Fatalf("unexpected rates: %d %d", st.CompletionRate(), st.InProgressRate())
	}
	if (Statistics{}).CompletionRate() != 0 {
		t.Fatal("expected zero rate for empty statistics")
	}
}

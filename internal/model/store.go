package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidTheme = errors.New("model: invalid theme")
	ErrInvalidSort  = errors.New("model: invalid sort option")
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type SortOption string

const (
	SortByDate     SortOption = "date"
	SortByPriority SortOption = "priority"
	SortByStatus   SortOption = "status"
)

var SortOptions = []SortOption{SortByDate, SortByPriority, SortByStatus}

func (s SortOption) IsValid() bool {
	switch s {
	case SortByDate, SortByPriority, SortByStatus:
		return true
	default:
		return false
	}
}

func (s SortOption) Next() SortOption {
	switch s {
	case SortByDate:
		return SortByPriority
	case SortByPriority:
		return SortByStatus
	default:
		return SortByDate
	}
}

func ParseSortOption(raw string) (SortOption, error) {
	s := SortOption(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return s, nil
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}

type Settings struct {
	Theme       Theme      `json:"theme" yaml:"theme"`
	DefaultSort SortOption `json:"defaultSort" yaml:"defaultSort"`
}

func (s Settings) Validate() error {
	if !s.Theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, s.Theme)
	}
	if !s.DefaultSort.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSort, s.DefaultSort)
	}
	return nil
}

// Store is the persisted aggregate. It exclusively owns its tasks and categories.
type Store struct {
	Tasks      []Task     `json:"tasks" yaml:"tasks"`
	Categories []Category `json:"categories" yaml:"categories"`
	Settings   Settings   `json:"settings" yaml:"settings"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, DefaultSort: SortByDate}
}

func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Work", Color: "#9b87f5"},
		{ID: "2", Name: "Personal", Color: "#33C3F0"},
		{ID: "3", Name: "Shopping", Color: "#FEC6A1"},
	}
}

// DefaultStore is the store used on first start, after a failed load, and after a reset.
func DefaultStore() Store {
	return Store{
		Tasks:      []Task{},
		Categories: DefaultCategories(),
		Settings:   DefaultSettings(),
	}
}

func (s Store) Clone() Store {
	out := Store{
		Tasks:      make([]Task, len(s.Tasks)),
		Categories: slices.Clone(s.Categories),
		Settings:   s.Settings,
	}
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Validate checks the structural integrity of a decoded store.
func (s Store) Validate() error {
	if err := s.Settings.Validate(); err != nil {
		return err
	}
	taskIDs := make(map[string]struct{}, len(s.Tasks))
	for i, t := range s.Tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		if _, dup := taskIDs[t.ID]; dup {
			return fmt.Errorf("task %d: duplicate id %q", i, t.ID)
		}
		taskIDs[t.ID] = struct{}{}
	}
	catIDs := make(map[string]struct{}, len(s.Categories))
	for i, c := range s.Categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("category %d: %w", i, err)
		}
		if _, dup := catIDs[c.ID]; dup {
			return fmt.Errorf("category %d: duplicate id %q", i, c.ID)
		}
		catIDs[c.ID] = struct{}{}
	}
	return nil
}

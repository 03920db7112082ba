// Package notify carries user-facing outcome signals from the repository to
// whatever surface is showing them (TUI status line, CLI output, desktop).
package notify

import (
	"fmt"
	"strings"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Op string

const (
	OpAdded      Op = "added"
	OpUpdated    Op = "updated"
	OpDeleted    Op = "deleted"
	OpNotFound   Op = "not found"
	OpReset      Op = "reset"
	OpLoadFailed Op = "load failed"
	OpSaveFailed Op = "save failed"
)

type Entity string

const (
	EntityTask     Entity = "Task"
	EntityCategory Entity = "Category"
	EntitySettings Entity = "Settings"
	EntityStore    Entity = "Store"
)

// UnknownName labels a signal whose entity could not be resolved.
const UnknownName = "Unknown"

type Signal struct {
	Op     Op
	Entity Entity
	Name   string
	Level  Level
	Err    error
	At     time.Time
}

// Message renders the signal as a one-line toast.
func (s Signal) Message() string {
	switch s.Op {
	case OpLoadFailed:
		return "Failed to load data from local storage"
	case OpSaveFailed:
		return "Failed to save data to local storage"
	case OpReset:
		return "All data has been reset"
	}
	if s.Entity == EntitySettings {
		return fmt.Sprintf("Settings %s", s.Op)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = UnknownName
	}
	return fmt.Sprintf("%s %q %s", s.Entity, name, s.Op)
}

func (s Signal) IsError() bool {
	return s.Level == LevelError
}

// Title is a short heading suitable for desktop notifications.
func (s Signal) Title() string {
	if s.IsError() {
		return "Error"
	}
	if s.Entity == "" {
		return "todolist"
	}
	return string(s.Entity)
}

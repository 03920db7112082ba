package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolist/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSearch   Type = "search"
	TypeFilter   Type = "filter"
	TypeSort     Type = "sort"
	TypeCategory Type = "category"
	TypeTheme    Type = "theme"
	TypeReset    Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs is "add <title> [!priority] [#category]".
type AddArgs struct {
	Title    string
	Priority model.Priority
	Category string
}

// SearchArgs is "search <term>"; an empty term clears the search.
type SearchArgs struct {
	Term string
}

// FilterArgs is "filter status:<s> priority:<p> category:<name>" or "filter clear".
// A value of "all" clears that field.
type FilterArgs struct {
	Clear    bool
	Patch    model.FilterPatch
	Category string
}

type SortArgs struct {
	By model.SortOption
}

type CategoryAction string

const (
	CategoryAdd    CategoryAction = "add"
	CategoryDelete CategoryAction = "delete"
	CategoryRename CategoryAction = "rename"
)

// CategoryArgs is "category add <name> [#color]", "category delete <name>" or
// "category rename <name> <new name>".
type CategoryArgs struct {
	Action  CategoryAction
	Name    string
	NewName string
	Color   string
}

// ThemeArgs is "theme light|dark|toggle".
type ThemeArgs struct {
	Toggle bool
	Theme  model.Theme
}

type ResetArgs struct{}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Search   *SearchArgs
	Filter   *FilterArgs
	Sort     *SortArgs
	Category *CategoryArgs
	Theme    *ThemeArgs
	Reset    *ResetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Term: strings.Join(args, " ")}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeReset:
		if len(args) != 1 || strings.ToLower(args[0]) != "confirm" {
			return Command{}, invalid("reset deletes every task; run 'reset confirm'")
		}
		return Command{Type: TypeReset, Raw: input, Reset: &ResetArgs{}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case len(arg) > 1 && strings.HasPrefix(arg, "!"):
			p, err := model.ParsePriority(arg[1:])
			if err != nil {
				return Command{}, invalid("unknown priority %q", arg[1:])
			}
			out.Priority = p
		case len(arg) > 1 && strings.HasPrefix(arg, "#"):
			out.Category = arg[1:]
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("filter requires status:, priority:, category: or clear")
	}
	if len(args) == 1 && strings.EqualFold(args[0], "clear") {
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Clear: true}}, nil
	}
	out := FilterArgs{}
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			return Command{}, invalid("filter argument %q must look like field:value", arg)
		}
		all := strings.EqualFold(value, "all")
		switch strings.ToLower(field) {
		case "status":
			out.Patch.SetStatus = true
			if !all {
				s, err := model.ParseStatus(value)
				if err != nil {
					return Command{}, invalid("unknown status %q", value)
				}
				out.Patch.Status = &s
			}
		case "priority":
			out.Patch.SetPriority = true
			if !all {
				p, err := model.ParsePriority(value)
				if err != nil {
					return Command{}, invalid("unknown priority %q", value)
				}
				out.Patch.Priority = &p
			}
		case "category":
			out.Patch.SetCategoryID = true
			if !all {
				out.Category = value
			}
		default:
			return Command{}, invalid("unknown filter field %q", field)
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &out}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("sort requires one of date, priority, status")
	}
	by, err := model.ParseSortOption(args[0])
	if err != nil {
		return Command{}, invalid("unknown sort %q", args[0])
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{By: by}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("category requires an action and a name")
	}
	action := CategoryAction(strings.ToLower(args[0]))
	rest := args[1:]
	out := CategoryArgs{Action: action}
	switch action {
	case CategoryAdd:
		if last := rest[len(rest)-1]; len(rest) > 1 && strings.HasPrefix(last, "#") {
			out.Color = last
			rest = rest[:len(rest)-1]
		}
		out.Name = strings.Join(rest, " ")
	case CategoryDelete:
		out.Name = strings.Join(rest, " ")
	case CategoryRename:
		if len(rest) < 2 {
			return Command{}, invalid("category rename requires a name and a new name")
		}
		out.Name = rest[0]
		out.NewName = strings.Join(rest[1:], " ")
	default:
		return Command{}, invalid("unknown category action %q", args[0])
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &out}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 0 || strings.EqualFold(args[0], "toggle") {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Toggle: true}}, nil
	}
	theme, err := model.ParseTheme(args[0])
	if err != nil {
		return Command{}, invalid("unknown theme %q", args[0])
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}

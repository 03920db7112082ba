package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/commands"
	"github.com/sandeepkv93/todolist/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}
	return m
}

// paletteHandlers binds palette commands to the repository. Mutating handlers
// leave the toast to the repository signal and return an empty message.
func (m *Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if _, err := m.addTask(a); err != nil {
				return commands.Result{}, err
			}
			m.switchView(ViewTasks)
			return commands.Result{}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.repo.SetFilters(model.FilterPatch{SetSearchTerm: true, SearchTerm: s.Term})
			m.switchView(ViewTasks)
			if s.Term == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %q (%d match)", s.Term, len(m.repo.FilteredTasks()))}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			if f.Clear {
				m.repo.ClearFilters()
				m.switchView(ViewTasks)
				return commands.Result{Message: "filters cleared"}, nil
			}
			patch := f.Patch
			if f.Category != "" {
				cat, ok := m.repo.CategoryByName(f.Category)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category %q", f.Category)}
				}
				patch.CategoryID = model.CategoryRef(cat.ID)
			}
			m.repo.SetFilters(patch)
			m.switchView(ViewTasks)
			return commands.Result{Message: "filters: " + strings.Join(m.filterLabels(), " ")}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			m.repo.SetSortBy(s.By)
			m.switchView(ViewTasks)
			return commands.Result{Message: fmt.Sprintf("sorted by %s", s.By)}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			switch c.Action {
			case commands.CategoryAdd:
				if _, err := m.repo.AddCategory(m.ctx, model.CategoryInput{Name: c.Name, Color: c.Color}); err != nil {
					return commands.Result{}, err
				}
			case commands.CategoryDelete, commands.CategoryRename:
				cat, ok := m.repo.CategoryByName(c.Name)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category %q", c.Name)}
				}
				if c.Action == commands.CategoryDelete {
					m.repo.DeleteCategory(m.ctx, cat.ID)
				} else {
					cat.Name = c.NewName
					if _, err := m.repo.UpdateCategory(m.ctx, cat); err != nil {
						return commands.Result{}, err
					}
				}
			}
			m.afterMutation()
			return commands.Result{}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			s := m.repo.Settings()
			if t.Toggle {
				s.Theme = s.Theme.Toggle()
			} else {
				s.Theme = t.Theme
			}
			if err := m.repo.UpdateSettings(m.ctx, s); err != nil {
				return commands.Result{}, err
			}
			m.afterMutation()
			return commands.Result{}, nil
		},
		Reset: func(commands.ResetArgs) (commands.Result, error) {
			m.resetAllData()
			return commands.Result{}, nil
		},
	}
}

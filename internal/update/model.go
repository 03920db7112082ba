package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/notify"
	"github.com/sandeepkv93/todolist/internal/repository"
)

type View string

const (
	ViewTasks      View = "Tasks"
	ViewCategories View = "Categories"
	ViewStatistics View = "Statistics"
	ViewSettings   View = "Settings"
)

var Views = []View{ViewTasks, ViewCategories, ViewStatistics, ViewSettings}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks      string
	Categories string
	Statistics string
	Settings   string
	Help       string
	Quit       string
}

type TasksState struct {
	Cursor int
	Adding bool
	Input  string
}

type CategoriesState struct {
	Cursor int
	Adding bool
	Input  string
}

const (
	settingTheme = iota
	settingDefaultSort
	settingReset
	settingCount
)

type SettingsState struct {
	Cursor       int
	ConfirmReset bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// Options wires the model to its collaborators.
type Options struct {
	// Signals must be the buffer the repository notifies into.
	Signals              *notify.Buffer
	Notifier             DesktopNotifier
	DesktopNotifications bool
	Logger               *zap.Logger
	StorageLabel         string
	StatePath            string
}

type Model struct {
	CurrentView        View
	SelectedTaskID     string
	SelectedCategoryID string
	Tasks              TasksState
	Categories         CategoriesState
	Settings           SettingsState
	Palette            CommandPaletteState
	HelpVisible        bool
	Notifications      []Notification
	DesktopEnabled     bool
	notifier           DesktopNotifier
	Status             StatusBar
	Keys               GlobalKeyMap
	Quitting           bool
	LastError          error

	ctx          context.Context
	repo         *repository.Repository
	signals      *notify.Buffer
	log          *zap.Logger
	storageLabel string
	statePath    string

	quickAddInput  textinput.Model
	categoryInput  textinput.Model
	commandInput   textinput.Model
	categoryTable  table.Model
	completionBar  progress.Model
	detailViewport viewport.Model
	helpModel      help.Model
}

func NewModel(ctx context.Context, repo *repository.Repository, opts Options) Model {
	m := Model{
		CurrentView:    ViewTasks,
		DesktopEnabled: opts.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Tasks:      "1",
			Categories: "2",
			Statistics: "3",
			Settings:   "4",
			Help:       "?",
			Quit:       "q",
		},
		ctx:          ctx,
		repo:         repo,
		signals:      opts.Signals,
		log:          opts.Logger,
		storageLabel: opts.StorageLabel,
		statePath:    strings.TrimSpace(opts.StatePath),
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.signals == nil {
		m.signals = notify.NewBuffer(0)
	}
	if m.statePath != "" {
		if st, err := loadUIState(m.statePath); err != nil {
			m.log.Warn("load ui state", zap.String("path", m.statePath), zap.Error(err))
		} else if isKnownView(st.LastView) {
			m.CurrentView = st.LastView
		}
	}
	m.initBubbleComponents()
	m.drainSignals()
	m.syncSelection()
	m.syncBubbleData()
	return m
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewCategories, ViewStatistics, ViewSettings:
		return true
	default:
		return false
	}
}

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.Placeholder = "title !high #Work"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.categoryInput = textinput.New()
	m.categoryInput.Prompt = "category> "
	m.categoryInput.Placeholder = "name #color"
	m.categoryInput.CharLimit = 64
	m.categoryInput.Width = 36

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	cols := []table.Column{
		{Title: "Category", Width: 16},
		{Title: "Color", Width: 9},
		{Title: "Tasks", Width: 6},
		{Title: "Done", Width: 6},
	}
	m.categoryTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.completionBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.detailViewport = viewport.New(46, 14)
	m.helpModel = help.New()
}

func (m Model) theme() model.Theme {
	return m.repo.Settings().Theme
}

// currentTask is the task under the cursor in the filtered list.
func (m Model) currentTask() (model.Task, bool) {
	tasks := m.repo.FilteredTasks()
	if m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Tasks.Cursor], true
}

func (m Model) currentCategory() (model.Category, bool) {
	cats := m.repo.Categories()
	if m.Categories.Cursor < 0 || m.Categories.Cursor >= len(cats) {
		return model.Category{}, false
	}
	return cats[m.Categories.Cursor], true
}

// syncSelection clamps cursors to the current lists and tracks the selected ids.
func (m *Model) syncSelection() {
	tasks := m.repo.FilteredTasks()
	m.Tasks.Cursor = clamp(m.Tasks.Cursor, len(tasks))
	m.SelectedTaskID = ""
	if len(tasks) > 0 {
		m.SelectedTaskID = tasks[m.Tasks.Cursor].ID
	}

	cats := m.repo.Categories()
	m.Categories.Cursor = clamp(m.Categories.Cursor, len(cats))
	m.SelectedCategoryID = ""
	if len(cats) > 0 {
		m.SelectedCategoryID = cats[m.Categories.Cursor].ID
	}
}

// followTask moves the task cursor onto id when it is visible.
func (m *Model) followTask(id string) {
	for i, t := range m.repo.FilteredTasks() {
		if t.ID == id {
			m.Tasks.Cursor = i
			break
		}
	}
	m.syncSelection()
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m *Model) syncBubbleData() {
	m.quickAddInput.SetValue(m.Tasks.Input)
	m.categoryInput.SetValue(m.Categories.Input)
	m.commandInput.SetValue(m.Palette.Input)
	if m.Tasks.Adding {
		m.quickAddInput.Focus()
	} else {
		m.quickAddInput.Blur()
	}
	if m.Categories.Adding {
		m.categoryInput.Focus()
	} else {
		m.categoryInput.Blur()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	stats := m.repo.Statistics()
	rows := make([]table.Row, 0)
	for _, c := range m.repo.Categories() {
		done := 0
		for _, t := range m.repo.TasksInCategory(c.ID) {
			if t.Status == model.StatusDone {
				done++
			}
		}
		rows = append(rows, table.Row{c.Name, c.Color, fmt.Sprintf("%d", stats.ByCategory[c.ID]), fmt.Sprintf("%d", done)})
	}
	m.categoryTable.SetRows(rows)
	if len(rows) > 0 {
		m.categoryTable.SetCursor(m.Categories.Cursor)
	}
	m.detailViewport.SetContent(m.taskDetailContent())
}

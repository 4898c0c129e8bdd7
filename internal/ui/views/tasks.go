package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/todo"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusNewTask FocusArea = iota
	FocusSearch
	FocusList
	FocusDeleteAll
	focusAreas
)

// removeTaskMsg fires once a row's disappearing transition has elapsed
type removeTaskMsg struct {
	id string
}

// TaskListView is the single task list screen
type TaskListView struct {
	ctrl   *todo.Controller
	view   todo.View // latest render from the store
	styles *styles.Styles
	keys   keys.KeyMap
	help   help.Model

	width  int
	height int

	// UI state
	focus   FocusArea
	cursor  int
	scrollY int
	newTask textinput.Model
	search  textinput.Model

	confirmingDeleteAll bool
	showHelpPopup       bool
}

// NewTaskListView creates the view and subscribes it to store renders
func NewTaskListView(ctrl *todo.Controller) *TaskListView {
	s := styles.NewStyles()

	newTask := textinput.New()
	newTask.Placeholder = "New task..."
	newTask.Prompt = "+ "

	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 100
	search.Prompt = "/ "

	h := help.New()
	h.Styles = s.Help

	v := &TaskListView{
		ctrl:    ctrl,
		styles:  s,
		keys:    keys.DefaultKeyMap(),
		help:    h,
		focus:   FocusNewTask,
		newTask: newTask,
		search:  search,
	}
	v.newTask.Focus()

	ctrl.Store().OnRender(v.onRender)
	return v
}

func (v *TaskListView) onRender(view todo.View) {
	v.view = view
	if v.cursor >= len(view.Rows) {
		v.cursor = max(0, len(view.Rows)-1)
	}
	if v.focus == FocusDeleteAll && !view.DeleteAllVisible {
		v.setFocus(FocusList)
	}
	v.ensureVisible()
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return textinput.Blink
}

// Focus returns the focused area
func (v *TaskListView) Focus() FocusArea {
	return v.focus
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(styles.ContentWidth(v.width)-8, 10, 50)
		v.newTask.Width = inputWidth
		v.search.Width = inputWidth
		v.help.Width = styles.ContentWidth(v.width)
		v.ensureVisible()
		return v, nil

	case removeTaskMsg:
		v.ctrl.FinishDelete(msg.id)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return v, tea.Quit
		}

		// Any key closes the help popup
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDeleteAll {
			return v.updateConfirmDeleteAll(msg)
		}

		switch v.focus {
		case FocusNewTask:
			return v.updateNewTask(msg)
		case FocusSearch:
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNewTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Enter):
		if v.ctrl.SubmitNewTask(v.newTask.Value()) {
			v.newTask.Reset()
			v.search.Reset()
			return v, v.newTask.Focus()
		}
		return v, nil
	case key.Matches(msg, v.keys.Back):
		v.setFocus(FocusList)
		return v, nil
	case key.Matches(msg, v.keys.Tab):
		return v, v.cycleFocus(1)
	case key.Matches(msg, v.keys.ShiftTab):
		return v, v.cycleFocus(-1)
	}

	var cmd tea.Cmd
	v.newTask, cmd = v.newTask.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Enter):
		v.ctrl.SubmitSearch()
		return v, nil
	case key.Matches(msg, v.keys.Back):
		v.setFocus(FocusList)
		return v, nil
	case key.Matches(msg, v.keys.Tab):
		return v, v.cycleFocus(1)
	case key.Matches(msg, v.keys.ShiftTab):
		return v, v.cycleFocus(-1)
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != before {
		v.ctrl.SearchInput(v.search.Value())
	}
	return v, cmd
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Tab):
		return v, v.cycleFocus(1)

	case key.Matches(msg, v.keys.ShiftTab):
		return v, v.cycleFocus(-1)

	case key.Matches(msg, v.keys.Up):
		if v.focus == FocusList && v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.focus == FocusList && v.cursor < len(v.view.Rows)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focus == FocusDeleteAll {
			v.requestDeleteAll()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if row, ok := v.selectedRow(); ok {
			v.ctrl.ChangeCheckbox(row.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if row, ok := v.selectedRow(); ok {
			return v, v.deleteRow(row.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.DeleteAll):
		v.requestDeleteAll()
		return v, nil

	case key.Matches(msg, v.keys.New):
		return v, v.setFocus(FocusNewTask)

	case key.Matches(msg, v.keys.Search):
		return v, v.setFocus(FocusSearch)

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDeleteAll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch msg.String() {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
		answer = false
	default:
		return v, nil
	}
	v.confirmingDeleteAll = false
	v.ctrl.DeleteAll(func(string) bool { return answer })
	return v, nil
}

func (v *TaskListView) requestDeleteAll() {
	if v.view.DeleteAllVisible {
		v.confirmingDeleteAll = true
	}
}

// deleteRow starts the row's disappearing transition and schedules removal
func (v *TaskListView) deleteRow(id string) tea.Cmd {
	delay, ok := v.ctrl.DeleteItem(id)
	if !ok {
		return nil
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return removeTaskMsg{id: id}
	})
}

func (v *TaskListView) selectedRow() (todo.Row, bool) {
	if v.focus != FocusList || v.cursor >= len(v.view.Rows) {
		return todo.Row{}, false
	}
	return v.view.Rows[v.cursor], true
}

func (v *TaskListView) setFocus(area FocusArea) tea.Cmd {
	v.newTask.Blur()
	v.search.Blur()
	v.focus = area

	switch area {
	case FocusNewTask:
		return v.newTask.Focus()
	case FocusSearch:
		return v.search.Focus()
	}
	return nil
}

func (v *TaskListView) cycleFocus(dir int) tea.Cmd {
	next := v.focus
	for {
		next = FocusArea((int(next) + dir + int(focusAreas)) % int(focusAreas))
		if next != FocusDeleteAll || v.view.DeleteAllVisible {
			break
		}
	}
	return v.setFocus(next)
}

// listHeight is the number of rows that fit on screen
func (v *TaskListView) listHeight() int {
	if v.height == 0 {
		return len(v.view.Rows) + 1
	}
	return max(v.height-16, 1)
}

func (v *TaskListView) ensureVisible() {
	visible := v.listHeight()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
	v.scrollY = clamp(v.scrollY, 0, max(len(v.view.Rows)-visible, 0))
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDeleteAll {
		return v.renderDeleteAllConfirm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.renderInputs())
	b.WriteString("\n")
	b.WriteString(v.renderList())

	if err := v.ctrl.LastErr(); err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Status.Render("Error: " + err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(v.help.View(v.keys)))

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	width := styles.ContentWidth(v.width)

	title := s.Title.Render("Todo")
	count := s.TitleMuted.Render("Total tasks: ") + s.Count.Render(fmt.Sprintf("%d", v.view.Total))

	if !v.view.DeleteAllVisible {
		return lipgloss.JoinVertical(lipgloss.Left, title, count)
	}

	btnStyle := s.Button
	if v.focus == FocusDeleteAll {
		btnStyle = s.ButtonFocused
	}
	btn := btnStyle.Render("Delete all")
	gap := max(width-lipgloss.Width(count)-lipgloss.Width(btn), 1)
	row := lipgloss.JoinHorizontal(lipgloss.Center, count, strings.Repeat(" ", gap), btn)

	return lipgloss.JoinVertical(lipgloss.Left, title, row)
}

func (v *TaskListView) renderInputs() string {
	s := v.styles
	width := clamp(styles.ContentWidth(v.width)-4, 10, 54)

	newStyle := s.Input
	if v.focus == FocusNewTask {
		newStyle = s.InputFocused
	}
	searchStyle := s.Input
	if v.focus == FocusSearch {
		searchStyle = s.InputFocused
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		newStyle.Width(width).Render(v.newTask.View()),
		searchStyle.Width(width).Render(v.search.View()),
	)
}

func (v *TaskListView) renderList() string {
	s := v.styles

	if v.view.EmptyMessage != "" {
		return s.Empty.Render(v.view.EmptyMessage)
	}

	end := min(v.scrollY+v.listHeight(), len(v.view.Rows))
	items := make([]string, 0, end-v.scrollY)
	for i := v.scrollY; i < end; i++ {
		items = append(items, v.renderRow(v.view.Rows[i], i == v.cursor && v.focus == FocusList))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderRow(row todo.Row, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)

	box := s.Checkbox.Render("[ ]")
	if row.Checked {
		box = s.CheckboxOn.Render("[x]")
	}

	style := s.Row
	switch {
	case v.ctrl.Disappearing(row.ID):
		style = s.Disappearing
	case selected:
		style = s.RowSelected
	case row.Checked:
		style = s.RowChecked
	}

	return style.Width(width).Render(box + " " + row.Title)
}

func (v *TaskListView) renderDeleteAllConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete all tasks?"),
		"",
		s.TitleMuted.Render(todo.DeleteAllPrompt),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonDanger.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, max(v.height, 1),
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	full := v.help
	full.ShowAll = true

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		full.View(v.keys),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	centered := lipgloss.Place(contentWidth, max(v.height, 1),
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

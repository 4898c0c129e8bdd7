package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/todo"
	"github.com/tgienger/todo/internal/ui/views"
)

// App is the root Bubble Tea model
type App struct {
	taskList *views.TaskListView
}

// Creates a new application bound to ctrl
func NewApp(ctrl *todo.Controller) *App {
	return &App{
		taskList: views.NewTaskListView(ctrl),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.taskList.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.taskList.View()
}

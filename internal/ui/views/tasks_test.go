package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/todo/internal/todo"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(v *TaskListView, text string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func testTaskListView(titles ...string) (*TaskListView, *todo.Store) {
	store := todo.NewStore(todo.NewMemoryStorage(nil))
	ctrl := todo.NewController(store)
	for _, title := range titles {
		ctrl.SubmitNewTask(title)
	}
	return NewTaskListView(ctrl), store
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// --- New task ---

func TestNewTask_EnterAdds(t *testing.T) {
	v, store := testTaskListView()
	require.Equal(t, FocusNewTask, v.Focus())

	typeText(v, "Buy milk")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Buy milk", store.Items()[0].Title)
	assert.Empty(t, v.newTask.Value(), "input is cleared after submit")
	assert.Equal(t, FocusNewTask, v.Focus(), "input keeps focus")
	assert.Equal(t, 1, v.view.Total)
}

func TestNewTask_BlankIsIgnored(t *testing.T) {
	v, store := testTaskListView()

	typeText(v, "   ")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "   ", v.newTask.Value())
}

func TestNewTask_LongTitleIsKept(t *testing.T) {
	v, store := testTaskListView()
	title := strings.Repeat("long title ", 40)

	typeText(v, title)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 1, store.Len())
	assert.Equal(t, title, store.Items()[0].Title)
}

func TestNewTask_QDoesNotQuit(t *testing.T) {
	v, _ := testTaskListView()

	_, cmd := v.Update(runeKey('q'))

	assert.False(t, isQuit(cmd))
	assert.Equal(t, "q", v.newTask.Value())
}

func TestNewTask_ResetsSearch(t *testing.T) {
	v, store := testTaskListView("Buy milk")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "zzz")
	require.Equal(t, todo.MsgNotFound, v.view.EmptyMessage)

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	typeText(v, "Walk dog")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, filtering := store.Filtered()
	assert.False(t, filtering)
	assert.Empty(t, v.search.Value())
	assert.Len(t, v.view.Rows, 2)
}

// --- Search ---

func TestSearch_FiltersAsYouType(t *testing.T) {
	v, _ := testTaskListView("Buy milk", "Walk dog")

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusSearch, v.Focus())
	typeText(v, "MIL")

	require.Len(t, v.view.Rows, 1)
	assert.Equal(t, "Buy milk", v.view.Rows[0].Title)
	assert.Equal(t, 2, v.view.Total)

	v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, v.view.Filtering)
	assert.Len(t, v.view.Rows, 2)
}

func TestSearch_EnterDoesNothing(t *testing.T) {
	v, _ := listFocused("Buy milk")
	v.Update(runeKey('/'))
	typeText(v, "zzz")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, FocusSearch, v.Focus())
	assert.Equal(t, "zzz", v.search.Value())
	assert.Contains(t, v.View(), todo.MsgNotFound)
}

// --- List ---

func listFocused(titles ...string) (*TaskListView, *todo.Store) {
	v, store := testTaskListView(titles...)
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	return v, store
}

func TestList_ToggleSelected(t *testing.T) {
	v, store := listFocused("Buy milk", "Walk dog")
	require.Equal(t, FocusList, v.Focus())

	v.Update(runeKey('j'))
	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	items := store.Items()
	assert.False(t, items[0].IsChecked)
	assert.True(t, items[1].IsChecked)
	assert.True(t, v.view.Rows[1].Checked)
}

func TestList_CursorStaysInBounds(t *testing.T) {
	v, _ := listFocused("a", "b")

	v.Update(runeKey('k'))
	assert.Equal(t, 0, v.cursor)
	v.Update(runeKey('j'))
	v.Update(runeKey('j'))
	assert.Equal(t, 1, v.cursor)
}

func TestList_DeleteAfterTransition(t *testing.T) {
	v, store := listFocused("Buy milk", "Walk dog")
	id := store.Items()[0].ID

	_, cmd := v.Update(runeKey('d'))
	require.NotNil(t, cmd)
	assert.Equal(t, 2, store.Len(), "still shown while disappearing")
	assert.True(t, v.ctrl.Disappearing(id))

	_, again := v.Update(runeKey('d'))
	assert.Nil(t, again, "second press does not schedule another removal")

	v.Update(removeTaskMsg{id: id})
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Walk dog", v.view.Rows[0].Title)

	// stale timer
	v.Update(removeTaskMsg{id: id})
	assert.Equal(t, 1, store.Len())
}

func TestList_DeleteCommandYieldsRemoval(t *testing.T) {
	v, store := listFocused("Buy milk")
	id := store.Items()[0].ID

	_, cmd := v.Update(runeKey('d'))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, removeTaskMsg{id: id}, msg)
}

func TestList_QuitKey(t *testing.T) {
	v, _ := listFocused()

	_, cmd := v.Update(runeKey('q'))
	assert.True(t, isQuit(cmd))
}

func TestCtrlCQuitsFromInput(t *testing.T) {
	v, _ := testTaskListView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

// --- Delete all ---

func TestDeleteAll_Declined(t *testing.T) {
	v, store := listFocused("a", "b", "c")

	v.Update(runeKey('D'))
	require.True(t, v.confirmingDeleteAll)
	assert.Contains(t, v.View(), todo.DeleteAllPrompt)

	v.Update(runeKey('x'))
	assert.True(t, v.confirmingDeleteAll, "unrelated keys keep the prompt open")

	v.Update(runeKey('n'))
	assert.False(t, v.confirmingDeleteAll)
	assert.Equal(t, 3, store.Len())
}

func TestDeleteAll_Confirmed(t *testing.T) {
	v, store := listFocused("a", "b", "c")

	v.Update(runeKey('D'))
	v.Update(runeKey('y'))

	assert.Equal(t, 0, store.Len())
	assert.False(t, v.view.DeleteAllVisible)
	assert.Contains(t, v.View(), todo.MsgNoTasks)
}

func TestDeleteAll_HiddenWhenEmpty(t *testing.T) {
	v, _ := listFocused()

	v.Update(runeKey('D'))
	assert.False(t, v.confirmingDeleteAll)

	for range 4 {
		v.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.NotEqual(t, FocusDeleteAll, v.Focus())
	}
}

func TestDeleteAll_ButtonFocus(t *testing.T) {
	v, store := listFocused("a")

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusDeleteAll, v.Focus())
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.confirmingDeleteAll)
	v.Update(runeKey('y'))

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, FocusList, v.Focus(), "focus leaves the hidden button")
}

// --- Rendering ---

func TestView_ShowsCountAndRows(t *testing.T) {
	v, _ := listFocused("Buy milk", "Walk dog")
	v.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	out := v.View()
	assert.Contains(t, out, "Total tasks:")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "Delete all")
}

func TestView_EmptyList(t *testing.T) {
	v, _ := testTaskListView()

	out := v.View()
	assert.Contains(t, out, todo.MsgNoTasks)
	assert.NotContains(t, out, "Delete all")
}

func TestHelpPopup(t *testing.T) {
	v, _ := listFocused("a")

	v.Update(runeKey('?'))
	assert.Contains(t, v.View(), "Keyboard Shortcuts")

	v.Update(runeKey('d'))
	assert.False(t, v.showHelpPopup)
	assert.False(t, v.ctrl.Disappearing(v.view.Rows[0].ID), "closing key is swallowed")
}

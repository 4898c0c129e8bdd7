package todo

import "github.com/tgienger/todo/internal/models"

// Empty-state messages
const (
	MsgNotFound = "Tasks not found"
	MsgNoTasks  = "There are no tasks yet"
)

// Row is one rendered task. ID doubles as the row's element identifier.
type Row struct {
	ID      string
	Title   string
	Checked bool
}

// View is a full rendering of the list state
type View struct {
	// Total is the size of the unfiltered list
	Total            int
	DeleteAllVisible bool
	Rows             []Row
	EmptyMessage     string
	Filtering        bool
	Query            string
}

// Render builds a View. filtered is displayed instead of items when filtering
// is true.
func Render(items, filtered []models.Task, filtering bool, query string) View {
	shown := items
	if filtering {
		shown = filtered
	}

	rows := make([]Row, len(shown))
	for i, t := range shown {
		rows[i] = Row{ID: t.ID, Title: t.Title, Checked: t.IsChecked}
	}

	v := View{
		Total:            len(items),
		DeleteAllVisible: len(items) > 0,
		Rows:             rows,
		Filtering:        filtering,
		Query:            query,
	}
	switch {
	case filtering && len(shown) == 0:
		v.EmptyMessage = MsgNotFound
	case len(items) == 0:
		v.EmptyMessage = MsgNoTasks
	}
	return v
}

package models

// Task represents a single to-do entry. The JSON field names are the
// persisted wire format and must not change.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsChecked bool   `json:"isChecked"`
}

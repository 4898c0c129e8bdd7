package todo

import (
	"html/template"
	"io"
)

var markupTmpl = template.Must(template.New("list").Parse(`{{range .Rows}}<li class="todo__item todo-item" data-js-todo-item>
  <input class="todo-item__checkbox" {{if .Checked}}checked {{end}}type="checkbox" id="{{.ID}}" data-js-todo-item-checkbox />
  <label class="todo-item__label" for="{{.ID}}" data-js-todo-item-label>{{.Title}}</label>
  <button class="todo-item__delete-button" type="button" title="Delete" aria-label="Delete" data-js-todo-item-delete-button>
    <svg width="20" height="20" viewBox="0 0 20 20" fill="none" xmlns="http://www.w3.org/2000/svg">
      <path d="M15 5L5 15M5 5L15 15" stroke="#757575" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" />
    </svg>
  </button>
</li>
{{end}}`))

// WriteMarkup writes the HTML list body for v. Titles and ids are escaped.
func WriteMarkup(w io.Writer, v View) error {
	return markupTmpl.Execute(w, v)
}

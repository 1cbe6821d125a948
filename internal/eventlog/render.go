package eventlog

import (
	"html/template"
	"io"
	"strings"
)

const timeLayout = "2006-01-02 15:04:05"

var tableTmpl = template.Must(template.New("log").Parse(
	`<table><tr><th>Time</th><th>Type</th><th>Message</th></tr>
{{range .}}<tr><td>{{.Time}}</td><td>{{.Level}}</td><td{{if .Class}} class="{{.Class}}"{{end}}>{{.Pad}}{{.Message}}</td></tr>
{{end}}</table>`))

type row struct {
	Time    string
	Level   Level
	Class   string
	Pad     template.HTML
	Message string
}

// Render writes the buffered entries as an HTML table, oldest first.
func (l *Logger) Render(w io.Writer) error {
	entries := l.Entries()
	rows := make([]row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row{
			Time:    e.Time.Format(timeLayout),
			Level:   e.Level,
			Class:   levelClass(e.Level),
			Pad:     template.HTML(strings.Repeat("&nbsp;", 4*e.Indent)),
			Message: e.Message,
		})
	}
	return tableTmpl.Execute(w, rows)
}

func levelClass(l Level) string {
	switch l {
	case LevelInfo:
		return "grey-text"
	case LevelError:
		return "red-text"
	default:
		return ""
	}
}

package selection

import (
	"html/template"
	"io"
)

var tableTmpl = template.Must(template.New("selection").Parse(
	`<table><tr><th>Time</th><th>Query</th><th>Selected FAQ</th><th>Selected Conf</th><th>Top FAQ</th><th>Top Conf</th><th>Ranking</th></tr>
{{range .}}<tr><td>{{.Time.Format "2006-01-02 15:04:05"}}</td><td>{{.Query}}</td><td>{{.SelectedName}}</td><td>{{.SelectedConfidence}}</td><td>{{.TopName}}</td><td>{{.TopConfidence}}</td><td>{{.Ranking}}</td></tr>
{{end}}</table>`))

func (s *service) Render(w io.Writer) error {
	return tableTmpl.Execute(w, s.Entries())
}

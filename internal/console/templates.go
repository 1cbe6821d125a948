package console

import "html/template"

const style = `<style>
    h1    { font-family: 'Inter', sans-serif; }
    body  { font-family: 'Inter', sans-serif; }
    table {
        border-collapse: collapse;
        border: 1px solid #ddd;
        font-family: 'Inter', sans-serif;
    }
    th, td {
        border: 1px solid #ddd;
        padding-top: 1px;
        padding-bottom: 1px;
        text-align: left;
        padding-left: 12px;
        padding-right: 12px;
        font-family: 'Inter', sans-serif;
    }
    .grey-text { color: #aaaaaa; }
    .red-text  { color: red; }
</style>`

var pageTmpl = template.Must(template.New("page").Parse(`<HTML><HEAD>` + style + `</HEAD><BODY>
<h1>FAQ Orchestrator</h1>
<button onclick="window.location.href = '/selection_log'">&nbsp;Faq Selections&nbsp;</button>&nbsp;&nbsp;
<button onclick="window.location.href = '/log'">&nbsp;Faq Logs&nbsp;</button>&nbsp;&nbsp;
<button onclick="window.location.href = '/config'">&nbsp;Faq Config&nbsp;</button>
<br><br>
{{.}}
</BODY></HTML>`))

type configView struct {
	Error   string
	Max     int
	Strip   bool
	Options []int
}

var configTmpl = template.Must(template.New("config").Parse(`{{if .Error}}<p class="red-text">{{.Error}}</p>
{{end}}<p>Existing maximum number of options: {{.Max}}</p>
<form action="/config" method="post">
    <label for="numbers">Select new maximum number of options (2 to 8):</label>
    <select id="numbers" name="selected_number">
{{range .Options}}<option value="{{.}}"{{if eq . $.Max}} selected{{end}}>{{.}}</option>
{{end}}    </select>
    <br><br>
    <label for="toggle">FAQ stripping (True/False):</label>
    <input type="checkbox" id="toggle" name="toggle_switch"{{if .Strip}} checked{{end}}>
    <br><br>
    <input type="submit" value="Submit">
</form>`))

package render

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.AssetsHost}}echarts.min.js"></script>
<style>
body { font-family: sans-serif; margin: 2em; }
.chart { width: 900px; height: 500px; margin-bottom: 2em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Summary}}
<ul id="summary">
{{- range .Summary}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- range .Regions}}
<div id="{{.ID}}" class="chart"></div>
{{- end}}
<script>
{{- range .Regions}}{{if .Option}}
echarts.init(document.getElementById({{.ID}})).setOption({{.Option}});
{{- end}}{{end}}
</script>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Dashboards</title></head>
<body>
<h1>Dashboards</h1>
<ul>
{{- range .}}
<li><a href="/dashboards/{{.Name}}">{{.Title}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

type pageRegion struct {
	ID     string
	Option template.JS
}

// Page is one dashboard as an HTML document.
type Page struct {
	Title      string
	AssetsHost string
	Summary    []string
	Surface    *Surface
}

// WritePage renders p. Regions drawn by EChartsRenderer are initialised in
// place; undrawn regions stay empty.
func WritePage(w io.Writer, p Page) error {
	data := struct {
		Title      string
		AssetsHost string
		Summary    []string
		Regions    []pageRegion
	}{Title: p.Title, AssetsHost: p.AssetsHost, Summary: p.Summary}

	if p.Surface != nil {
		for _, region := range p.Surface.Regions() {
			pr := pageRegion{ID: region}
			if d, ok := p.Surface.Get(region); ok && d.ContentType == EChartsContentType {
				// json.Marshal escapes <, > and &, so the option is safe inside <script>.
				pr.Option = template.JS(d.Content)
			}
			data.Regions = append(data.Regions, pr)
		}
	}
	return pageTemplate.Execute(w, data)
}

// IndexEntry is one link on the index page.
type IndexEntry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func WriteIndex(w io.Writer, entries []IndexEntry) error {
	return indexTemplate.Execute(w, entries)
}

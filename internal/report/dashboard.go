package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

// DashboardData feeds the static dashboard page.
type DashboardData struct {
	Community   string
	Query       string
	GeneratedAt time.Time
	Trailer     *models.Post
	Episodes    []models.Post
	Others      []models.Post
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"utc": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 UTC") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Query}} tracker</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 1150px; color: #222; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #666; margin-bottom: 2rem; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
  th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; }
  th { background: #f5f5f5; }
  td.num { text-align: right; }
  iframe { border: 1px solid #ddd; width: 100%; height: 600px; margin-bottom: 2rem; }
</style>
</head>
<body>
<h1>{{.Query}}</h1>
<p class="meta">r/{{.Community}} &middot; generated {{utc .GeneratedAt}}</p>

{{if .Trailer}}
<h2>Trailer</h2>
<table>
<tr><th>Title</th><th>Comments</th><th>Score</th></tr>
<tr>
  <td><a href="{{.Trailer.Permalink}}">{{.Trailer.Title}}</a></td>
  <td class="num">{{.Trailer.NumComments}}</td>
  <td class="num">{{.Trailer.Score}}</td>
</tr>
</table>
{{end}}

<h2>Episode discussions</h2>
{{if .Episodes}}
<table>
<tr><th>Episode</th><th>Title</th><th>Comments</th><th>Score</th></tr>
{{range .Episodes}}
<tr>
  <td>{{.EpisodeCode}}</td>
  <td><a href="{{.Permalink}}">{{.Title}}</a></td>
  <td class="num">{{.NumComments}}</td>
  <td class="num">{{.Score}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No episode discussion threads found yet.</p>
{{end}}

<h2>Other notable posts</h2>
{{if .Others}}
<table>
<tr><th>Title</th><th>Comments</th><th>Score</th></tr>
{{range .Others}}
<tr>
  <td><a href="{{.Permalink}}">{{.Title}}</a></td>
  <td class="num">{{.NumComments}}</td>
  <td class="num">{{.Score}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No other posts selected.</p>
{{end}}

<h2>Comment growth</h2>
<iframe src="` + EpisodeChartFile + `"></iframe>
<iframe src="` + OtherChartFile + `"></iframe>

<p class="meta">Raw tables:
<a href="` + AllPostsFile + `">all posts</a> &middot;
<a href="` + EpisodePostsFile + `">episodes</a> &middot;
<a href="` + SelectedPostsFile + `">selected</a></p>
</body>
</html>
`))

// WriteDashboard renders the static dashboard page into the report directory.
func (w *Writer) WriteDashboard(d DashboardData) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(filepath.Join(w.dir, DashboardFile))
	if err != nil {
		return fmt.Errorf("create %s: %w", DashboardFile, err)
	}
	defer f.Close()

	if err := dashboardTmpl.Execute(f, d); err != nil {
		return fmt.Errorf("render %s: %w", DashboardFile, err)
	}
	return nil
}

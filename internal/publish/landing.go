package publish

import (
	"html/template"
	"os"
	"path/filepath"
	"time"
)

// Page holds everything the landing page shows: where the artifacts live and
// a short summary of the run that produced them.
type Page struct {
	CountryLabel string
	Channels     int
	UniqueIDs    int
	GuideMatched int
	PlaylistURL  string
	GuideURL     string
	HasGuide     bool
	GeneratedAt  time.Time
}

var landingTmpl = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tv-mix — {{.CountryLabel}}</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; }
code { background: #f0f0f0; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>tv-mix playlist &amp; guide</h1>
<p>Region: <strong>{{.CountryLabel}}</strong> — {{.Channels}} channels, {{.UniqueIDs}} unique IDs{{if .HasGuide}}, {{.GuideMatched}} with guide data{{end}}.</p>
<ul>
<li>Playlist: <a href="{{.PlaylistURL}}"><code>{{.PlaylistURL}}</code></a></li>
{{if .HasGuide}}<li>Guide: <a href="{{.GuideURL}}"><code>{{.GuideURL}}</code></a></li>{{end}}
</ul>
<p>Point your player (e.g. PVR IPTV Simple) at the playlist URL{{if .HasGuide}} and the guide URL{{end}}.</p>
<p><small>Generated {{.GeneratedAt.UTC.Format "2006-01-02 15:04 UTC"}}.</small></p>
</body>
</html>
`))

// WriteLandingPage renders index.html into the publish directory.
func (w *Writer) WriteLandingPage(p Page) error {
	f, err := os.Create(filepath.Join(w.Dir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := landingTmpl.Execute(f, p); err != nil {
		return err
	}
	return f.Close()
}

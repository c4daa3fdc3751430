package main

import (
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/config"
	"github.com/tomz197/swoosh/internal/leaderboard"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = "8080"
	defaultScoresPath = "/app/data/scores.msgpack"
	shownEntries      = 20
)

var page = template.Must(template.New("index").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SWOOSH</title>
<style>
body { background: #05060a; color: #d8dee9; font-family: monospace; max-width: 42rem; margin: 3rem auto; }
h1 { letter-spacing: .4rem; }
code { background: #1b1f2a; padding: .3rem .6rem; }
table { width: 100%; border-collapse: collapse; margin-top: 2rem; }
td, th { padding: .25rem .5rem; text-align: left; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>SWOOSH</h1>
<p>Swoop your craft up through the atmosphere and out into space.</p>
<p>Play in your terminal: <code>ssh -t {{.SSHHost}}</code></p>
<h2>Leaderboard</h2>
{{if .Unavailable}}<p>leaderboard unavailable</p>
{{else if not .Entries}}<p>No scores yet. Be the first.</p>
{{else}}<table>
<tr><th>#</th><th>Player</th><th>Score</th><th>Destroyed</th><th></th></tr>
{{range $i, $e := .Entries}}<tr><td>{{inc $i}}</td><td>{{$e.Player}}</td><td class="num">{{$e.Score}}</td><td class="num">{{$e.Destroyed}}</td><td>{{if $e.Victory}}reached space{{end}}</td></tr>
{{end}}</table>{{end}}
</body>
</html>
`))

type pageData struct {
	SSHHost     string
	Entries     []leaderboard.Entry
	Unavailable bool
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "swoosh-web",
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	store := leaderboard.NewFileStore(config.GetEnv("SWOOSH_SCORES", defaultScoresPath))

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		data := pageData{SSHHost: sshHost}
		// The SSH server owns the file; reload it on every request.
		board, err := leaderboard.New(store, 0)
		if err != nil {
			logger.Error("failed to load leaderboard", "err", err)
			data.Unavailable = true
		} else {
			data.Entries = board.Top(shownEntries)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

package internal

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dgraph-io/badger/v4"
)

const inspectPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>hybrid-guard artifacts</title></head>
<body>
<form><input name="prefix" value="{{.Prefix}}"><button>Filter</button></form>
<table border="1" cellpadding="4">
<tr><th>Key</th><th>Type</th><th>Detail</th></tr>
{{range .Items}}<tr><td>{{.Key}}</td><td>{{.Type}}</td><td>{{.Detail}}</td></tr>
{{end}}</table>
<ul>{{range $k, $v := .Stats}}<li>{{$k}}: {{$v}}</li>{{end}}</ul>
</body></html>`

type InspectRow struct {
	Key    string
	Type   string
	Detail string
}

// RowMapper turns a raw entry into its kind and a readable summary.
type RowMapper func(key string, val []byte) (string, string)
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// NewDebugHandler serves a read-only listing of the store, filtered by key prefix.
func NewDebugHandler(db *badger.DB, mapper RowMapper, statsProvider StatsProvider, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	tmpl := template.Must(template.New("inspect").Parse(inspectPage))

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Prefix: r.URL.Query().Get("prefix"),
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			prefix := []byte(data.Prefix)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				item := it.Item()
				err := item.Value(func(val []byte) error {
					kind, detail := mapper(string(item.Key()), val)
					data.Items = append(data.Items, InspectRow{Key: string(item.Key()), Type: kind, Detail: detail})
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Error("Inspection failed", "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
	return mux
}

// StartDebugServer exposes NewDebugHandler on its own port. It is only meant for debug runs.
func StartDebugServer(db *badger.DB, port int, mapper RowMapper, statsProvider StatsProvider, log *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: NewDebugHandler(db, mapper, statsProvider, log),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("Debug server stopped", "err", err)
		}
	}()
	return srv
}

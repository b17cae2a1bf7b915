package server

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="/static/uiwire.css">
</head>
<body>
{{.Body}}
    <script src="/static/uiwire.js"></script>
</body>
</html>`))

// RouterConfig wraps the app's body markup in the page shell. Layout
// and styling live entirely in the body and static assets; the server
// carries no widget geometry.
type RouterConfig struct {
	Title     string
	StaticDir string
	BodyHtml  string
}

func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Title:     "uiwire app",
		StaticDir: "static",
	}
}

// NewRouter serves the page shell at /, the sync channel at /ws, and
// static assets under /static.
func NewRouter(store *Store, config *RouterConfig) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	page := struct {
		Title string
		Body  template.HTML
	}{
		Title: config.Title,
		Body:  template.HTML(config.BodyHtml),
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, page); err != nil {
			glog.Infof("[s]page error = %s\n", err)
		}
	})
	router.Get("/ws", NewHandler(store).ServeHTTP)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(config.StaticDir))))

	return router
}

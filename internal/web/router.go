// internal/web/router.go
//
// HTTP surface of the playground.
//
// Context
// -------
// One chi router serves three kinds of traffic:
//
//   - HTML pages (welcome, day, settings) rendered from the active theme,
//   - the JSON API the browser uses to read and change its settings, and
//   - static files: example inputs, solution files, and theme assets.
//
// Every request runs inside session.Middleware, so handlers always have a
// client id.  That id is the settings scope, which gives each browser its
// own overrides the way local storage would.
//
// Middleware order
// ----------------
//  1. RequestID       – chi, feeds the access log.
//  2. ForceHTTPS      – redirect before any work is done.
//  3. session         – client id cookie.
//  4. RequestLog      – needs the client id.
//  5. Security        – headers on every response.
//  6. Recoverer       – chi, last so panics still get logged and headers.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.
package web

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/day"
	"github.com/yanizio/aocjsui/internal/middleware"
	"github.com/yanizio/aocjsui/internal/session"
	"github.com/yanizio/aocjsui/internal/settings"
	"github.com/yanizio/aocjsui/internal/theme"
)

// Options wires the router to its collaborators.
type Options struct {
	Settings *settings.Service
	Themes   *theme.Manager
	Days     *day.Loader

	// Files is the playground root; StaticDirs are the directories under it
	// served verbatim (normally the default inputs and solutions paths).
	Files      fs.FS
	StaticDirs []string

	ThemeName  string
	ForceHTTPS bool
}

// Server holds the handlers.  Build with New, mount with Routes.
type Server struct {
	opts Options
	log  *zap.Logger
}

// New returns a Server.  An empty ThemeName selects the default theme.
func New(o Options) *Server {
	if o.ThemeName == "" {
		o.ThemeName = theme.DefaultTheme
	}
	return &Server{opts: o, log: zap.L().With(zap.String("component", "web"))}
}

// Routes builds the full handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.ForceHTTPS(s.opts.ForceHTTPS))
	r.Use(session.Middleware)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Security)
	r.Use(chimw.Recoverer)

	// Pages
	r.Get("/", s.handleWelcome)
	r.Get("/day/{day}", s.handleDay)
	r.Get("/settings", s.handleSettings)

	// JSON API
	r.Route("/api", func(api chi.Router) {
		api.Get("/settings", s.handleSettingsGet)
		api.Patch("/settings", s.handleSettingsUpdate)
		api.Put("/settings", s.handleSettingsUpdate)
		api.Delete("/settings", s.handleSettingsClear)
		api.Get("/nav", s.handleNav)
		api.Get("/days/{day}", s.handleDayAPI)
	})

	// Static files
	r.Get("/themes/{name}/assets/*", s.handleThemeAsset)
	for _, dir := range s.opts.StaticDirs {
		s.mountStatic(r, dir)
	}

	// Ops
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// scope returns the settings scope of the request.
func scope(r *http.Request) string {
	id, _ := session.ClientID(r.Context())
	return id
}

// resolver returns the Resolver for the requesting client.
func (s *Server) resolver(r *http.Request) *settings.Resolver {
	return s.opts.Settings.For(scope(r))
}

/*──────────────────────────── static files ─────────────────────────────────*/

// mountStatic serves Files/<dir> under /<dir>/.
func (s *Server) mountStatic(r chi.Router, dir string) {
	dir = strings.Trim(path.Clean("/"+dir), "/")
	if dir == "" || s.opts.Files == nil {
		return
	}
	sub, err := fs.Sub(s.opts.Files, dir)
	if err != nil {
		s.log.Warn("static dir skipped", zap.String("dir", dir), zap.Error(err))
		return
	}
	prefix := "/" + dir + "/"
	r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.FS(sub))))
}

func (s *Server) handleThemeAsset(w http.ResponseWriter, r *http.Request) {
	assets, err := s.opts.Themes.Assets(chi.URLParam(r, "name"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	prefix := strings.TrimSuffix(r.URL.Path, chi.URLParam(r, "*"))
	http.StripPrefix(prefix, http.FileServer(http.FS(assets))).ServeHTTP(w, r)
}

// internal/web/pages.go
//
// HTML page handlers.  Each page resolves the client's settings, builds the
// day strip, and renders one template set from the active theme.  Output is
// buffered so a template error never leaves a half-written page.

package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/day"
	"github.com/yanizio/aocjsui/internal/head"
	"github.com/yanizio/aocjsui/internal/nav"
	"github.com/yanizio/aocjsui/internal/settings"
	"github.com/yanizio/aocjsui/internal/theme"
)

// pageData is what every template receives.
type pageData struct {
	Head     *head.Builder
	Settings settings.Configuration
	Nav      []nav.Link
	Day      *day.Content // nil outside day pages
}

const siteName = "aoc-jsui"

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	cfg := s.resolver(r).Resolve(r.Context())

	h := head.New()
	h.SetTitle(siteName + " | " + strconv.Itoa(cfg.Year))
	h.Meta("description", "Advent of Code "+strconv.Itoa(cfg.Year)+" playground")

	s.render(w, r, theme.WelcomeFile, pageData{Head: h, Settings: cfg, Nav: nav.Build(cfg, 0)})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	cfg := s.resolver(r).Resolve(r.Context())

	h := head.New()
	h.SetTitle(siteName + " | Settings")

	s.render(w, r, theme.SettingsFile, pageData{Head: h, Settings: cfg, Nav: nav.Build(cfg, 0)})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	d, ok := nav.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	cfg := s.resolver(r).Resolve(r.Context())

	content, err := s.opts.Days.Load(r.Context(), cfg, d)
	if err != nil {
		s.dayError(w, r, err)
		return
	}

	h := head.New()
	h.SetTitle(content.Title)
	h.Meta("description", "Advent of Code "+strconv.Itoa(content.Year)+" day "+strconv.Itoa(d))

	s.render(w, r, content.Template, pageData{
		Head:     h,
		Settings: cfg,
		Nav:      nav.Build(cfg, d),
		Day:      &content,
	})
}

// dayError maps day lookup failures onto status codes.
func (s *Server) dayError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, day.ErrLocked), errors.Is(err, day.ErrNoSuchDay):
		http.NotFound(w, r)
	case r.Context().Err() != nil:
		// Client went away; nothing useful to send.
	default:
		s.log.Error("day load failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// render executes page from the configured theme and writes it.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	th, err := s.opts.Themes.Load(s.opts.ThemeName, page)
	if err != nil {
		s.log.Error("theme load failed",
			zap.String("theme", s.opts.ThemeName), zap.String("page", page), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := th.Execute(&buf, data); err != nil {
		s.log.Error("template execute failed",
			zap.String("page", page), zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

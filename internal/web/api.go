// internal/web/api.go
//
// JSON API consumed by the browser.  Settings responses are always the full
// resolved configuration, so the client never merges anything itself.

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/day"
	"github.com/yanizio/aocjsui/internal/nav"
	"github.com/yanizio/aocjsui/internal/session"
	"github.com/yanizio/aocjsui/internal/settings"
)

// maxPatchBytes caps settings request bodies.
const maxPatchBytes = 64 << 10

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.resolver(r).Resolve(r.Context()))
}

// handleSettingsUpdate serves PATCH and PUT alike: both merge, since the
// stored object only ever holds overrides.
func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var p settings.Patch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPatchBytes))
	if err := dec.Decode(&p); err != nil {
		s.log.Debug("settings patch rejected", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid settings patch: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.resolver(r).Update(r.Context(), p))
}

// handleSettingsClear resets the caller's overrides.  With ?forget=1 the
// client cookie is dropped too, so the browser starts over with a fresh id.
func (s *Server) handleSettingsClear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("forget") == "1" {
		session.Forget(w)
	}
	writeJSON(w, http.StatusOK, s.resolver(r).Clear(r.Context()))
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	active := 0
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, _ = nav.ParseDay(raw)
	}
	cfg := s.resolver(r).Resolve(r.Context())
	writeJSON(w, http.StatusOK, nav.Build(cfg, active))
}

func (s *Server) handleDayAPI(w http.ResponseWriter, r *http.Request) {
	d, ok := nav.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not a day"})
		return
	}
	cfg := s.resolver(r).Resolve(r.Context())
	content, err := s.opts.Days.Load(r.Context(), cfg, d)
	switch {
	case errors.Is(err, day.ErrLocked), errors.Is(err, day.ErrNoSuchDay):
		writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	case err != nil:
		s.dayError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, content)
	}
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("json encode failed", zap.Error(err))
	}
}

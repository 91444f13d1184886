package day

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/settings"
)

// Content is a Page plus whatever files were found.
type Content struct {
	Page
	Input      string    `json:"input"`
	InputFound bool      `json:"inputFound"`
	Code       [2]string `json:"code"`
	CodeFrom   [2]string `json:"codeFrom"` // path served, "" when none
}

// Loader reads example inputs and solution files from fsys.  Paths in the
// Configuration are resolved relative to the root of fsys.
type Loader struct {
	fsys fs.FS
	log  *zap.Logger
}

// NewLoader returns a Loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, log: zap.L().With(zap.String("component", "day"))}
}

// Load checks that d is available, then gathers its files.  A missing file
// is never an error: the field stays empty and a WARN line is logged.  The
// example input is read only when AutoLoadExample is on, and solutions only
// when AutoLoadSolutions is on.
func (l *Loader) Load(ctx context.Context, cfg settings.Configuration, d int) (Content, error) {
	if err := Check(cfg, d); err != nil {
		return Content{}, err
	}
	c := Content{Page: Vars(cfg, d)}

	if cfg.AutoLoadExample {
		c.Input, c.InputFound = l.readOrEmpty(ctx, c.ExamplePath)
		if !c.InputFound {
			l.log.Warn("example input not found", zap.String("path", c.ExamplePath))
		}
	}
	if cfg.AutoLoadSolutions {
		for i, s := range c.Solutions {
			c.Code[i], c.CodeFrom[i] = l.solution(ctx, s)
		}
	}
	return c, ctx.Err()
}

// solution prefers the per-day file and falls back to the part template.
func (l *Loader) solution(ctx context.Context, s Solution) (code, from string) {
	if txt, ok := l.readOrEmpty(ctx, s.Path); ok {
		return txt, s.Path
	}
	if txt, ok := l.readOrEmpty(ctx, s.Template); ok {
		return txt, s.Template
	}
	l.log.Warn("solution not found",
		zap.String("path", s.Path), zap.String("template", s.Template))
	return "", ""
}

// readOrEmpty is the server-side fetch-or-null.
func (l *Loader) readOrEmpty(ctx context.Context, name string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	name = strings.TrimPrefix(path.Clean(name), "/")
	if !fs.ValidPath(name) {
		l.log.Warn("asset path rejected", zap.String("path", name))
		return "", false
	}
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Debug("asset not found", zap.String("path", name))
		} else {
			l.log.Warn("asset read failed", zap.String("path", name), zap.Error(err))
		}
		return "", false
	}
	return string(raw), true
}

package web

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/settings"
)

// ChangeLogger returns a settings listener that writes one INFO line per
// change.  cmd/web subscribes it once for the whole process.
func ChangeLogger(log *zap.Logger) settings.Listener {
	if log == nil {
		log = zap.L()
	}
	return settings.ListenerFunc(func(_ context.Context, ev settings.Event) {
		log.Info("settings changed",
			zap.String("client", ev.Scope),
			zap.Int("year", ev.Settings.Year),
			zap.String("theme", string(ev.Settings.Theme)),
			zap.String("layout", string(ev.Settings.DayLayout)),
		)
	})
}

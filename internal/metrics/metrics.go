// Package metrics holds Prometheus instruments that are used across the
// server.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Store operation labels for StoreErrorsTotal.
const (
	OpRead   = "read"
	OpDecode = "decode"
	OpWrite  = "write"
	OpRemove = "remove"
)

var (
	SettingsResolveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aoc_settings_resolve_total",
			Help: "Cumulative number of settings resolutions.",
		})

	SettingsUpdateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aoc_settings_update_total",
			Help: "Cumulative number of settings update calls.",
		})

	SettingsResetTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aoc_settings_reset_total",
			Help: "Cumulative number of settings reset calls.",
		})

	SettingsChangesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aoc_settings_changes_total",
			Help: "Cumulative number of change notifications published.",
		})

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aoc_settings_store_errors_total",
			Help: "Store failures swallowed by the settings resolver, by operation.",
		}, []string{"op"})

	LegacyMigrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aoc_settings_legacy_migrations_total",
			Help: "Legacy theme keys folded into the override object.",
		})

	TemplateLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aoc_template_loads_total",
			Help: "Template sets parsed from the theme filesystem.",
		})
)

func init() {
	prometheus.MustRegister(
		SettingsResolveTotal,
		SettingsUpdateTotal,
		SettingsResetTotal,
		SettingsChangesTotal,
		StoreErrorsTotal,
		LegacyMigrationsTotal,
		TemplateLoadsTotal,
	)
}

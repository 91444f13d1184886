// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, ensuring the binary never
// runs with partial, malformed, or missing configuration.
//
// Field tags cover the simple rules.  One struct-level rule is registered
// for `Store` because its required fields depend on the selected driver:
// `file` needs `dir`, and `mysql` and `sqlite` need `dsn`.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.
//   • Section dividers use the simple comment style.

package config

import "github.com/go-playground/validator/v10"

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterStructValidation(storeRules, Store{})
	return val
}

//
// custom rules
//

func storeRules(sl validator.StructLevel) {
	s := sl.Current().Interface().(Store)
	switch s.Driver {
	case "file":
		if s.Dir == "" {
			sl.ReportError(s.Dir, "Dir", "dir", "required_for_file", "")
		}
	case "mysql", "sqlite":
		if s.DSN == "" {
			sl.ReportError(s.DSN, "DSN", "dsn", "required_for_sql", s.Driver)
		}
	}
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}

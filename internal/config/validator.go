// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `Load` calls `validateStruct` right after unmarshalling the merged Koanf
// tree.  Any failure aborts startup, so the binary never runs with a
// partial rule list or a malformed listen address.

package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}

// internal/config/model.go
//
// Typed configuration model for paramguard.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                              – dotenv values,
//   • `conf/global.yaml`                           – primary static file,
//   • `PARAMGUARD_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing or a rule names an unknown source.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Rule names are checked later by the rules catalog, which owns them.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Log section
//

// Log controls the zap logger.  Dir is relative to Paths.Root unless
// absolute.
type Log struct {
	Dir     string `koanf:"dir"     validate:"required"`
	Level   string `koanf:"level"   validate:"omitempty,oneof=debug info warn error"`
	Console bool   `koanf:"console"`
}

//
// Rules section
//

// Rule is one validator registration: run Rule(Arg) against the field
// Name read from Source.  Order in the file is registration order.
// Source is lowercased by the loader before validation, so "Path" is fine.
type Rule struct {
	Source string `koanf:"source" validate:"required,oneof=path query header cookie"`
	Name   string `koanf:"name"   validate:"required"`
	Rule   string `koanf:"rule"   validate:"required"`
	Arg    string `koanf:"arg"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // PARAMGUARD_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP  HTTP   `koanf:"http"`
	Log   Log    `koanf:"log"`
	Rules []Rule `koanf:"rules" validate:"dive"`
	Paths Paths  `koanf:"-"`
}

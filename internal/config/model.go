// internal/config/model.go
//
// Typed configuration model for the mobile post catalogue service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                              – dotenv values,
//   • `conf/global.yaml`                           – primary static file,
//   • `MOBILEPOST_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the binary fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
package config

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

// Database holds the MySQL DSN.  The DSN must carry parseTime=true so
// timestamp columns scan into time.Time.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

// Import holds batch-import tunables.
type Import struct {
	ReportPath string `koanf:"report_path"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // MOBILEPOST_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Import   Import   `koanf:"import"`
	Paths    Paths    `koanf:"-"`
}

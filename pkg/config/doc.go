// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/caarlos0/env/v11` for tag-driven parsing and
// `github.com/joho/godotenv` for optional .env files:
//
//	type Config struct {
//	    MaxInheritanceDepth int  `env:"MAX_INHERITANCE_DEPTH" envDefault:"10"`
//	    StrictIdentifiers   bool `env:"STRICT_IDENTIFIERS"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg,
//	    config.WithPrefix("RBAC_"),
//	    config.WithEnvFiles(".env"),
//	)
//
// Errors can be compared with errors.Is against ErrNilPointer,
// ErrLoadingEnvFile and ErrParsingConfig.
package config

package rbac

import "github.com/dmitrymomot/permit/pkg/config"

// EnvPrefix is prepended to every variable read by LoadConfig.
const EnvPrefix = "RBAC_"

// Config holds Authorizer settings that can be supplied from the environment.
type Config struct {
	MaxInheritanceDepth int  `env:"MAX_INHERITANCE_DEPTH" envDefault:"10"` // MaxInheritanceDepth limits how deep role inheritance chains may go.
	StrictIdentifiers   bool `env:"STRICT_IDENTIFIERS" envDefault:"false"` // StrictIdentifiers rejects definitions with empty or whitespace-containing actions and subjects.
}

// LoadConfig reads Config from RBAC_* environment variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

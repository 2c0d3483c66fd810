package config

// Config represents the complete configuration structure
type Config struct {
	Annosaurus   ServiceConfig `mapstructure:"annosaurus"`
	Panoptes     ServiceConfig `mapstructure:"panoptes"`
	VampireSquid ServiceConfig `mapstructure:"vampiresquid"`
	Logging      LoggingConfig `mapstructure:"logging"`
}

// ServiceConfig holds the connection details for one microservice. The
// client secret is only needed for services the caller writes to.
type ServiceConfig struct {
	URL          string `mapstructure:"url"`
	ClientSecret string `mapstructure:"client_secret"`
	TimeoutSecs  int    `mapstructure:"timeout_seconds"`
}

// Enabled reports whether the service has an endpoint configured.
func (s ServiceConfig) Enabled() bool {
	return s.URL != ""
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

package config

import "log"

// MustValid stops the process when required settings are missing.
func MustValid(cfg Config) Config {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return cfg
}

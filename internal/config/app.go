package config

import (
	"time"
)

const (
	defaultNamespace = "@gofinances"
	defaultTimezone  = "America/Sao_Paulo"
	defaultCacheTTL  = 300
)

type AppConfig struct {
	StorageNamespace string `yaml:"namespace"`
	TimezoneName     string `yaml:"timezone"`
	CacheTTLSeconds  int32  `yaml:"dashboard-cache-ttl-seconds"`
}

func (s *AppConfig) Namespace() string {
	if s.StorageNamespace == "" {
		return defaultNamespace
	}
	return s.StorageNamespace
}

// Location falls back to UTC when the zone database has no such zone.
func (s *AppConfig) Location() *time.Location {
	name := s.TimezoneName
	if name == "" {
		name = defaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *AppConfig) CacheTTL() int32 {
	if s.CacheTTLSeconds <= 0 {
		return defaultCacheTTL
	}
	return s.CacheTTLSeconds
}

package config

import "github.com/pkg/errors"

const (
	MemoryBackend    = "memory"
	MemcachedBackend = "memcached"
	PostgresBackend  = "postgres"
	SQLiteBackend    = "sqlite"
)

type StorageConfig struct {
	BackendName string `yaml:"backend"`
	MaxRetries  int    `yaml:"max-update-retries"`
}

func (s *StorageConfig) Backend() string {
	if s.BackendName == "" {
		return MemoryBackend
	}
	return s.BackendName
}

func (s *StorageConfig) UpdateRetries() int {
	if s.MaxRetries <= 0 {
		return 5
	}
	return s.MaxRetries
}

func (s *StorageConfig) validate() error {
	switch s.Backend() {
	case MemoryBackend, MemcachedBackend, PostgresBackend, SQLiteBackend:
		return nil
	}
	return errors.Errorf("unknown storage backend %q", s.BackendName)
}

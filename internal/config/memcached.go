package config

import "time"

type MemcachedConfig struct {
	NodeHosts []string `yaml:"hosts"`
	TimeoutMs int      `yaml:"timeout-ms"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

func (s *MemcachedConfig) Enabled() bool {
	return len(s.NodeHosts) > 0
}

func (s *MemcachedConfig) Timeout() time.Duration {
	if s.TimeoutMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

package config

type HTTPConfig struct {
	ListenAddr  string   `yaml:"addr"`
	MetricsPort string   `yaml:"metrics-addr"`
	Origins     []string `yaml:"allow-origins"`
}

func (s *HTTPConfig) Addr() string {
	if s.ListenAddr == "" {
		return ":8080"
	}
	return s.ListenAddr
}

func (s *HTTPConfig) MetricsAddr() string {
	if s.MetricsPort == "" {
		return ":9090"
	}
	return s.MetricsPort
}

func (s *HTTPConfig) AllowOrigins() []string {
	return s.Origins
}

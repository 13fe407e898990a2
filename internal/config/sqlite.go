package config

type SQLiteConfig struct {
	FilePath string `yaml:"path"`
}

func (s *SQLiteConfig) Path() string {
	if s.FilePath == "" {
		return "data/gofinances.db"
	}
	return s.FilePath
}

package config

import "fmt"

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=%s"

type PostgresConfig struct {
	Hostname string `yaml:"host"`
	Db       string `yaml:"db"`
	User     string `yaml:"username"`
	Pswd     string `yaml:"password"`
	SSL      string `yaml:"sslmode"`
}

func (s *PostgresConfig) DSN() string {
	ssl := s.SSL
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf(dsnTemplate, s.User, s.Pswd, s.Hostname, s.Db, ssl)
}
